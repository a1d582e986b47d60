package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormInit initializes Storm database.
func StormInit(database, codec string) error {
	db, err := stormOpen(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	for name, m := range Tables() {
		if err := db.Init(m); err != nil {
			return errors.Wrapf(err, "could not init %s index", name)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database, codec string) error {
	db, err := stormOpen(database, codec)
	if err != nil {
		return err
	}
	defer db.Close()

	for name, m := range Tables() {
		if err := db.ReIndex(m); err != nil {
			return errors.Wrapf(err, "could not ReIndex %s", name)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database, codec string) (Client, error) {
	db, err := stormOpen(database, codec)
	if err != nil {
		return nil, err
	}

	return &strm{
		db: db,
	}, nil
}

// StormRaw returns a raw Storm database connection, used by the console.
func StormRaw(database, codec string) (*storm.DB, error) {
	return stormOpen(database, codec)
}

func stormOpen(database, name string) (*storm.DB, error) {
	c, err := Codec(name)
	if err != nil {
		return nil, err
	}

	db, err := storm.Open(database, storm.Codec(c))
	return db, errors.Wrap(err, "could not get database connection")
}

// Save inserts or updates the entry in database with the given model.
func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

// Delete deletes the entry in database with the given model.
func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is nil or a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is an unique constraint violation.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

////////////////
//            //
// Users      //
//            //
////////////////

// FindUser returns the user for the given id (UUID).
func (c *strm) FindUser(id string) (*model.User, error) {
	var user model.User
	if err := c.db.One("ID", id, &user); err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

// FindUserByMail returns the user for the given email.
func (c *strm) FindUserByMail(email string) (*model.User, error) {
	var user model.User
	if err := c.db.One("Email", email, &user); err != nil {
		return nil, errors.Wrap(err, "find user by mail")
	}
	return &user, nil
}

////////////////
//            //
// Content    //
//            //
////////////////

// FindPost returns the blog post for the given id (UUID).
func (c *strm) FindPost(id string) (*model.Post, error) {
	var post model.Post
	if err := c.db.One("ID", id, &post); err != nil {
		return nil, errors.Wrap(err, "could not find post")
	}
	return &post, nil
}

// FindPosts returns all the blog posts, newest first.
func (c *strm) FindPosts() ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := c.db.Select().OrderBy("CreatedAt").Reverse().Find(&posts)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find posts")
	}
	return posts, nil
}

// FindEvent returns the event for the given id (UUID).
func (c *strm) FindEvent(id string) (*model.Event, error) {
	var event model.Event
	if err := c.db.One("ID", id, &event); err != nil {
		return nil, errors.Wrap(err, "could not find event")
	}
	return &event, nil
}

// FindEvents returns all the events, newest first.
func (c *strm) FindEvents() ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	err := c.db.Select().OrderBy("CreatedAt").Reverse().Find(&events)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find events")
	}
	return events, nil
}

// FindGalleryImage returns the gallery image for the given id (UUID).
func (c *strm) FindGalleryImage(id string) (*model.GalleryImage, error) {
	var image model.GalleryImage
	if err := c.db.One("ID", id, &image); err != nil {
		return nil, errors.Wrap(err, "could not find gallery image")
	}
	return &image, nil
}

// FindGalleryImages returns the gallery images, newest first.
// An empty category means all the categories.
func (c *strm) FindGalleryImages(category string) ([]*model.GalleryImage, error) {
	var query []q.Matcher
	if category != "" {
		query = append(query, q.Eq("Category", category))
	}

	images := make([]*model.GalleryImage, 0)
	err := c.db.Select(query...).OrderBy("CreatedAt").Reverse().Find(&images)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find gallery images")
	}
	return images, nil
}
