package model

import "time"

// Gallery categories.
const (
	CategoryGeneral  = "general"
	CategoryEvents   = "events"
	CategoryProjects = "projects"
	CategoryTeam     = "team"
)

// Categories lists the allowed gallery categories.
var Categories = []string{CategoryGeneral, CategoryEvents, CategoryProjects, CategoryTeam}

type (
	// A Post represents a blog post record.
	Post struct {
		Base `msgpack:",inline" storm:"inline"`

		Title       string `msgpack:"title"`
		Description string `msgpack:"description"`
		Image       string `msgpack:"image"` // Data URI
	}

	// An Event represents an event record.
	Event struct {
		Base `msgpack:",inline" storm:"inline"`

		Title       string    `msgpack:"title"`
		Description string    `msgpack:"description"`
		Date        time.Time `msgpack:"date"      storm:"index"`
		Venue       string    `msgpack:"venue"`
		IsActive    bool      `msgpack:"is_active" storm:"index"`
		Image       string    `msgpack:"image"`
	}

	// A GalleryImage represents an image record of the gallery.
	GalleryImage struct {
		Base `msgpack:",inline" storm:"inline"`

		Title    string `msgpack:"title"`
		Category string `msgpack:"category" storm:"index"`
		Image    string `msgpack:"image"`
	}
)

// ValidCategory returns true if c is empty or one of the allowed categories.
func ValidCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
