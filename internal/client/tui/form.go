package tui

import (
	"context"
	"strings"
	"sync"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/checkbox"
	"github.com/gcla/gowid/widgets/text"
	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

type (
	// imageForm is implemented by the create forms.
	imageForm interface {
		SelectImage(filename string) error
		RemoveImage()
		Image() (libcms.EncodedImage, bool)
	}

	// submitter runs one submission at a time, the form fields are only written while it is held.
	submitter struct {
		mu sync.Mutex
	}
)

// imagePicker returns the widgets selecting the image of the form from a file path.
func imagePicker(ui *TUI, form imageForm) gowid.IWidget {
	path := input("Image file: ", "")
	info := text.New(describe(form.Image()))

	update := func(app gowid.IApp) {
		info.SetText(describe(form.Image()), app)
	}

	return stack(
		path,
		info,
		toolbar(
			action("Select image", func(gowid.IApp) {
				filename := expand(path.Text())
				ui.async(func(context.Context) {
					form.SelectImage(filename) // nolint:errcheck
					ui.refresh(update)
				})
			}),
			action("Remove image", func(app gowid.IApp) {
				form.RemoveImage()
				update(app)
			}),
		),
	)
}

// submit applies the widget values to the form and submits it.
// Clicks are ignored while a submission is in flight.
func (s *submitter) submit(ui *TUI, apply func(), submit func(ctx context.Context) error) {
	ui.async(func(ctx context.Context) {
		if !s.mu.TryLock() {
			return
		}
		defer s.mu.Unlock()

		apply()
		submit(ctx) // nolint:errcheck
	})
}

////////////////////
//                //
// Screens        //
//                //
////////////////////

func postForm(ui *TUI) gowid.IWidget {
	var s submitter
	form := admin.NewPostForm(ui.ioc)

	heading := input("Title: ", "")
	description := input("Description: ", "")

	return stack(
		heading,
		description,
		imagePicker(ui, form),
		toolbar(
			action("Submit", func(gowid.IApp) {
				title, desc := heading.Text(), description.Text()
				s.submit(ui, func() {
					form.Title = title
					form.Description = desc
				}, form.Submit)
			}),
			action("Cancel", func(app gowid.IApp) {
				ui.show(admin.RoutePosts, app)
			}),
		),
	)
}

func eventForm(ui *TUI) gowid.IWidget {
	var s submitter
	form := admin.NewEventForm(ui.ioc)

	heading := input("Title: ", "")
	description := input("Description: ", "")
	date := input("Date: ", "")
	venue := input("Venue: ", "")
	active := checkbox.New(form.IsActive)

	return stack(
		heading,
		description,
		date,
		venue,
		toolbar(active, text.New(" Active")),
		imagePicker(ui, form),
		toolbar(
			action("Submit", func(gowid.IApp) {
				values := admin.EventDraft{
					Title:       heading.Text(),
					Description: description.Text(),
					Date:        date.Text(),
					Venue:       venue.Text(),
					IsActive:    active.IsChecked(),
				}
				s.submit(ui, func() {
					form.Title = values.Title
					form.Description = values.Description
					form.Date = values.Date
					form.Venue = values.Venue
					form.IsActive = values.IsActive
				}, form.Submit)
			}),
			action("Cancel", func(app gowid.IApp) {
				ui.show(admin.RouteEvents, app)
			}),
		),
	)
}

func galleryForm(ui *TUI) gowid.IWidget {
	var s submitter
	form := admin.NewGalleryForm(ui.ioc)

	names := make([]string, 0, len(libcms.Categories))
	for _, c := range libcms.Categories {
		names = append(names, string(c))
	}

	heading := input("Title: ", "")
	category := input("Category ("+strings.Join(names, ", ")+"): ", "")

	return stack(
		heading,
		category,
		imagePicker(ui, form),
		toolbar(
			action("Submit", func(gowid.IApp) {
				title, c := heading.Text(), category.Text()
				s.submit(ui, func() {
					form.Title = title
					form.Category = c
				}, form.Submit)
			}),
			action("Cancel", func(app gowid.IApp) {
				ui.show(admin.RouteGallery, app)
			}),
		),
	)
}
