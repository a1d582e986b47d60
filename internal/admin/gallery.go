package admin

import (
	"context"
	"sync"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

// A GalleryForm adds an image to the gallery. Only the image is required.
type GalleryForm struct {
	createForm
	Title    string
	Category string
}

// NewGalleryForm returns a new GalleryForm.
func NewGalleryForm(ioc IOC) *GalleryForm {
	return &GalleryForm{createForm: createForm{ioc: ioc}}
}

// Submit validates the form and adds the image.
func (f *GalleryForm) Submit(ctx context.Context) error {
	var category libcms.Category

	return f.submit(ctx, creation{
		validate: func() (err error) {
			if _, ok := f.Image(); !ok {
				return invalid("Please select an image")
			}

			category, err = libcms.ParseCategory(f.Category)
			if err != nil {
				return invalid("Unknown category")
			}
			return nil
		},
		create: func(ctx context.Context, image string) error {
			return f.ioc.Client.CreateGalleryImage(ctx, libcms.GalleryParams{
				Image:    image,
				Title:    f.Title,
				Category: category,
			})
		},
		clear: func() {
			f.Title = ""
			f.Category = ""
		},
		success: "Image added to gallery",
		failure: "Failed to add image",
		route:   RouteGallery,
	})
}

// A GalleryList is the list of gallery images, searchable on title and filterable on category.
// Changing the category fetches the images again.
type GalleryList struct {
	*List[libcms.GalleryImage]
	mu       sync.Mutex
	category libcms.Category
}

// NewGalleryList returns a new GalleryList.
func NewGalleryList(ioc IOC) *GalleryList {
	g := &GalleryList{}
	g.List = NewList(ioc, "gallery", func(ctx context.Context) ([]libcms.GalleryImage, error) {
		return ioc.Client.Gallery(ctx, g.Category())
	}, "Title")
	return g
}

// Category returns the current category, empty means all.
func (g *GalleryList) Category() libcms.Category {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.category
}

// SetCategory filters the gallery on the given category and reloads it.
func (g *GalleryList) SetCategory(ctx context.Context, category libcms.Category) {
	g.mu.Lock()
	g.category = category
	g.mu.Unlock()

	g.Load(ctx)
}
