package database

import (
	"github.com/mdouchement/cmsadmin/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is an already exists error.
		IsAlreadyExists(err error) bool

		UserInteraction
		PostInteraction
		EventInteraction
		GalleryInteraction
	}

	// An UserInteraction defines all the methods used to interact with a user record.
	UserInteraction interface {
		// FindUser returns the user for the given id (UUID).
		FindUser(id string) (*model.User, error)
		// FindUserByMail returns the user for the given email.
		FindUserByMail(email string) (*model.User, error)
	}

	// A PostInteraction defines all the methods used to interact with blog post records.
	PostInteraction interface {
		// FindPost returns the blog post for the given id (UUID).
		FindPost(id string) (*model.Post, error)
		// FindPosts returns all the blog posts, newest first.
		FindPosts() ([]*model.Post, error)
	}

	// An EventInteraction defines all the methods used to interact with event records.
	EventInteraction interface {
		// FindEvent returns the event for the given id (UUID).
		FindEvent(id string) (*model.Event, error)
		// FindEvents returns all the events, newest first.
		FindEvents() ([]*model.Event, error)
	}

	// A GalleryInteraction defines all the methods used to interact with gallery records.
	GalleryInteraction interface {
		// FindGalleryImage returns the gallery image for the given id (UUID).
		FindGalleryImage(id string) (*model.GalleryImage, error)
		// FindGalleryImages returns the gallery images, newest first.
		// An empty category means all the categories.
		FindGalleryImages(category string) ([]*model.GalleryImage, error)
	}
)

// Tables lists the records stored in database, by table name.
func Tables() map[string]model.Model {
	return map[string]model.Model{
		"users":   &model.User{},
		"posts":   &model.Post{},
		"events":  &model.Event{},
		"gallery": &model.GalleryImage{},
	}
}

// Records returns a pointer to an empty slice of the records of the given table.
func Records(table string) any {
	switch table {
	case "users":
		return &[]*model.User{}
	case "posts":
		return &[]*model.Post{}
	case "events":
		return &[]*model.Event{}
	case "gallery":
		return &[]*model.GalleryImage{}
	}
	return nil
}
