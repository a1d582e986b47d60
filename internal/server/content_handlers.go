package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/cmsadmin/internal/apierror"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/mdouchement/cmsadmin/internal/server/serializer"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
)

type (
	// content contains all the blog post, event and gallery handlers.
	content struct {
		db database.Client
	}

	postParams struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}

	eventParams struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Venue       string `json:"venue"`
		Image       string `json:"image"`
		IsActive    *bool  `json:"isActive"`
	}

	galleryParams struct {
		Title    string `json:"title"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
)

////////////////////
//                //
// Blog posts     //
//                //
////////////////////

// Posts lists all the blog posts.
func (h *content) Posts(c echo.Context) error {
	posts, err := h.db.FindPosts()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Posts(posts))
}

// Post renders the requested blog post.
func (h *content) Post(c echo.Context) error {
	post, err := h.db.FindPost(c.Param("id"))
	if err != nil {
		return h.notFound(err, "Post not found")
	}
	return c.JSON(http.StatusOK, serializer.Post(post))
}

// CreatePost creates a blog post. Title, description and image are required.
func (h *content) CreatePost(c echo.Context) error {
	var params postParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get post's params.")
	}

	if blank(params.Title) || blank(params.Description) || params.Image == "" {
		return apierror.BadRequest("All fields are required")
	}
	if err := image(params.Image); err != nil {
		return err
	}

	post := &model.Post{
		Title:       params.Title,
		Description: params.Description,
		Image:       params.Image,
	}
	if err := h.db.Save(post); err != nil {
		return errors.Wrap(err, "could not persist post")
	}

	return c.JSON(http.StatusCreated, serializer.Post(post))
}

// UpdatePost updates the title and the description of a blog post.
func (h *content) UpdatePost(c echo.Context) error {
	post, err := h.db.FindPost(c.Param("id"))
	if err != nil {
		return h.notFound(err, "Post not found")
	}

	var params postParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get post's params.")
	}

	if blank(params.Title) || blank(params.Description) {
		return apierror.BadRequest("Title and description are required")
	}

	post.Title = params.Title
	post.Description = params.Description
	if err := h.db.Save(post); err != nil {
		return errors.Wrap(err, "could not persist post")
	}

	return c.JSON(http.StatusOK, serializer.Post(post))
}

// DeletePost deletes a blog post.
func (h *content) DeletePost(c echo.Context) error {
	post, err := h.db.FindPost(c.Param("id"))
	if err != nil {
		return h.notFound(err, "Post not found")
	}

	if err := h.db.Delete(post); err != nil {
		return errors.Wrap(err, "could not delete post")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}

////////////////////
//                //
// Events         //
//                //
////////////////////

// Events lists all the events.
func (h *content) Events(c echo.Context) error {
	events, err := h.db.FindEvents()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Events(events))
}

// Event renders the requested event.
func (h *content) Event(c echo.Context) error {
	event, err := h.db.FindEvent(c.Param("id"))
	if err != nil {
		return h.notFound(err, "Event not found")
	}
	return c.JSON(http.StatusOK, serializer.Event(event))
}

// CreateEvent creates an event. Title, description and date are required.
func (h *content) CreateEvent(c echo.Context) error {
	var params eventParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get event's params.")
	}

	event := &model.Event{IsActive: true}
	if err := params.apply(event); err != nil {
		return err
	}
	if params.Image != "" {
		if err := image(params.Image); err != nil {
			return err
		}
		event.Image = params.Image
	}

	if err := h.db.Save(event); err != nil {
		return errors.Wrap(err, "could not persist event")
	}

	return c.JSON(http.StatusCreated, serializer.Event(event))
}

// UpdateEvent updates an event. The image is kept.
func (h *content) UpdateEvent(c echo.Context) error {
	event, err := h.db.FindEvent(c.Param("id"))
	if err != nil {
		return h.notFound(err, "Event not found")
	}

	var params eventParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get event's params.")
	}

	if err := params.apply(event); err != nil {
		return err
	}

	if err := h.db.Save(event); err != nil {
		return errors.Wrap(err, "could not persist event")
	}

	return c.JSON(http.StatusOK, serializer.Event(event))
}

// DeleteEvent deletes an event.
func (h *content) DeleteEvent(c echo.Context) error {
	event, err := h.db.FindEvent(c.Param("id"))
	if err != nil {
		return h.notFound(err, "Event not found")
	}

	if err := h.db.Delete(event); err != nil {
		return errors.Wrap(err, "could not delete event")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted"})
}

func (p eventParams) apply(event *model.Event) error {
	if blank(p.Title) || blank(p.Description) || blank(p.Date) {
		return apierror.BadRequest("Title, description and date are required")
	}

	date, err := libcms.ParseDate(p.Date)
	if err != nil {
		return apierror.BadRequest("Invalid date")
	}

	event.Title = p.Title
	event.Description = p.Description
	event.Date = date.Time
	event.Venue = p.Venue
	if p.IsActive != nil {
		event.IsActive = *p.IsActive
	}
	return nil
}

////////////////////
//                //
// Gallery        //
//                //
////////////////////

// Gallery lists the gallery images, filtered on the `category` query parameter.
func (h *content) Gallery(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "all" {
		category = ""
	}
	if !model.ValidCategory(category) {
		return apierror.BadRequest("Unknown category")
	}

	images, err := h.db.FindGalleryImages(category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.GalleryImages(images))
}

// CreateGalleryImage adds an image to the gallery. Only the image is required.
func (h *content) CreateGalleryImage(c echo.Context) error {
	var params galleryParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get image's params.")
	}

	if params.Image == "" {
		return apierror.BadRequest("Image is required")
	}
	if err := image(params.Image); err != nil {
		return err
	}
	if !model.ValidCategory(params.Category) {
		return apierror.BadRequest("Unknown category")
	}

	img := &model.GalleryImage{
		Title:    params.Title,
		Category: params.Category,
		Image:    params.Image,
	}
	if err := h.db.Save(img); err != nil {
		return errors.Wrap(err, "could not persist gallery image")
	}

	return c.JSON(http.StatusCreated, serializer.GalleryImage(img))
}

////////////////////
//                //
// Uploads        //
//                //
////////////////////

// Upload renders the raw image of a record.
func (h *content) Upload(c echo.Context) error {
	var (
		uri string
		err error
	)

	id := c.Param("id")
	switch c.Param("collection") {
	case "blogs":
		var m *model.Post
		if m, err = h.db.FindPost(id); err == nil {
			uri = m.Image
		}
	case "events":
		var m *model.Event
		if m, err = h.db.FindEvent(id); err == nil {
			uri = m.Image
		}
	case "gallery":
		var m *model.GalleryImage
		if m, err = h.db.FindGalleryImage(id); err == nil {
			uri = m.Image
		}
	default:
		return apierror.NotFound("Image not found")
	}

	if err != nil {
		return h.notFound(err, "Image not found")
	}
	if uri == "" {
		return apierror.NotFound("Image not found")
	}

	mimetype, payload, err := libcms.DecodeDataURI(uri)
	if err != nil {
		return errors.Wrap(err, "could not decode stored image")
	}
	return c.Blob(http.StatusOK, mimetype, payload)
}

////////////////////
//                //
// Helpers        //
//                //
////////////////////

func (h *content) notFound(err error, message string) error {
	if h.db.IsNotFound(err) {
		return apierror.NotFound(message)
	}
	return err
}

// image checks that the given data URI is a well-formed image within the size limit.
func image(uri string) error {
	mimetype, payload, err := libcms.DecodeDataURI(uri)
	if err != nil || !strings.HasPrefix(mimetype, "image/") {
		return apierror.BadRequest("Invalid image")
	}
	if len(payload) > libcms.MaxImageSize {
		return apierror.New(http.StatusRequestEntityTooLarge, "Image must be smaller than 10MB")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
