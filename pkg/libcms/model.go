package libcms

import (
	"strings"

	"github.com/pkg/errors"
)

// Gallery categories.
const (
	CategoryGeneral  Category = "general"
	CategoryEvents   Category = "events"
	CategoryProjects Category = "projects"
	CategoryTeam     Category = "team"
)

// ErrUnknownCategory is returned when parsing a category that does not exist.
var ErrUnknownCategory = errors.New("unknown category")

// Categories lists all the gallery categories.
var Categories = []Category{CategoryGeneral, CategoryEvents, CategoryProjects, CategoryTeam}

type (
	// A Category classifies gallery images.
	Category string

	// A Post is a blog post.
	Post struct {
		ID          string `json:"_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl,omitempty"`
	}

	// An Event is a dated event.
	Event struct {
		ID          string `json:"_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        Date   `json:"date"`
		Venue       string `json:"venue,omitempty"`
		IsActive    *bool  `json:"isActive,omitempty"`
		Image       string `json:"image,omitempty"`
		ImageURL    string `json:"imageUrl,omitempty"`
	}

	// A GalleryImage is an image of the gallery.
	GalleryImage struct {
		ID       string   `json:"_id"`
		Image    string   `json:"image"`
		Title    string   `json:"title,omitempty"`
		Category Category `json:"category,omitempty"`
	}

	// PostParams are the fields sent to create or update a Post.
	// Image is only sent on creation.
	PostParams struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image,omitempty"`
	}

	// EventParams are the fields sent to create or update an Event.
	// Image is only sent on creation.
	EventParams struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        Date   `json:"date"`
		Venue       string `json:"venue,omitempty"`
		Image       string `json:"image,omitempty"`
		IsActive    bool   `json:"isActive"`
	}

	// GalleryParams are the fields sent to add an image to the gallery.
	GalleryParams struct {
		Image    string   `json:"image"`
		Title    string   `json:"title,omitempty"`
		Category Category `json:"category,omitempty"`
	}
)

// ParseCategory returns the Category matching s (case-insensitive).
// An empty string or "all" returns the empty Category which means no category.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return "", nil
	}

	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.Wrap(ErrUnknownCategory, s)
}

// Active returns the event's status. Events without status are active.
func (e Event) Active() bool {
	return e.IsActive == nil || *e.IsActive
}

// SetActive defines the event's status.
func (e *Event) SetActive(active bool) {
	e.IsActive = &active
}
