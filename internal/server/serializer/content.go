package serializer

import (
	"path"

	"github.com/mdouchement/cmsadmin/internal/model"
)

// UploadsPath is the route prefix of the stored images.
const UploadsPath = "/api/uploads"

// ImageURL returns the URL of the image of the given record, or an empty string if it has no image.
func ImageURL(collection, id, image string) string {
	if image == "" {
		return ""
	}
	return path.Join(UploadsPath, collection, id)
}

// Post serializes the render of a blog post.
func Post(m *model.Post) map[string]any {
	r := map[string]any{
		"_id":         m.ID,
		"title":       m.Title,
		"description": m.Description,
	}
	if url := ImageURL("blogs", m.ID, m.Image); url != "" {
		r["imageUrl"] = url
	}
	return r
}

// Posts serializes the render of blog posts.
func Posts(m []*model.Post) []map[string]any {
	posts := make([]map[string]any, len(m))
	for i, p := range m {
		posts[i] = Post(p)
	}
	return posts
}

// Event serializes the render of an event.
func Event(m *model.Event) map[string]any {
	r := map[string]any{
		"_id":         m.ID,
		"title":       m.Title,
		"description": m.Description,
		"date":        m.Date.UTC(),
		"isActive":    m.IsActive,
	}
	if m.Venue != "" {
		r["venue"] = m.Venue
	}
	if url := ImageURL("events", m.ID, m.Image); url != "" {
		r["image"] = url
		r["imageUrl"] = url
	}
	return r
}

// Events serializes the render of events.
func Events(m []*model.Event) []map[string]any {
	events := make([]map[string]any, len(m))
	for i, e := range m {
		events[i] = Event(e)
	}
	return events
}

// GalleryImage serializes the render of a gallery image.
func GalleryImage(m *model.GalleryImage) map[string]any {
	r := map[string]any{
		"_id":   m.ID,
		"image": ImageURL("gallery", m.ID, m.Image),
	}
	if m.Title != "" {
		r["title"] = m.Title
	}
	if m.Category != "" {
		r["category"] = m.Category
	}
	return r
}

// GalleryImages serializes the render of gallery images.
func GalleryImages(m []*model.GalleryImage) []map[string]any {
	images := make([]map[string]any, len(m))
	for i, g := range m {
		images[i] = GalleryImage(g)
	}
	return images
}
