package client

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/sanity-io/litter"
)

type (
	// PostInput holds the fields of a new blog post.
	PostInput struct {
		Title       string
		Description string
		Image       string // Path of the image file
	}

	// PostChanges holds the fields to update, nil fields are kept.
	PostChanges struct {
		Title       *string
		Description *string
	}

	// EventInput holds the fields of a new event.
	EventInput struct {
		Title       string
		Description string
		Date        string
		Venue       string
		Image       string // Path of the image file, optional
		Inactive    bool
	}

	// EventChanges holds the fields to update, nil fields are kept.
	EventChanges struct {
		Title       *string
		Description *string
		Date        *string
		Venue       *string
		Active      *bool
	}

	// GalleryInput holds the fields of a new gallery image.
	GalleryInput struct {
		Title    string
		Category string
		Image    string // Path of the image file
	}
)

////////////////////
//                //
// Blog posts     //
//                //
////////////////////

// Posts prints the blog posts matching the search term.
func (e *Env) Posts(ctx context.Context, search string) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	list := admin.NewPostList(s.ioc)
	list.Load(ctx)
	list.SetSearch(search)

	return e.table(list.State(), "posts", func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
		for _, p := range list.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, truncate(p.Title, 40), truncate(p.Description, 60))
		}
	})
}

// ShowPost prints the given blog post.
func (e *Env) ShowPost(ctx context.Context, id string, dump bool) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	detail := admin.NewPostDetail(s.ioc, id)
	if err = detail.Load(ctx); err != nil {
		return err
	}
	post, _ := detail.Entity()

	if dump {
		e.printf("%s\n", litter.Sdump(post))
		return nil
	}
	return e.fields(
		"ID", post.ID,
		"Title", post.Title,
		"Description", post.Description,
		"Image", post.ImageURL,
	)
}

// CreatePost creates a blog post.
func (e *Env) CreatePost(ctx context.Context, in PostInput) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	form := admin.NewPostForm(s.ioc)
	form.Title = in.Title
	form.Description = in.Description
	if in.Image != "" {
		if err = form.SelectImage(in.Image); err != nil {
			return reported(err)
		}
	}

	return reported(form.Submit(ctx))
}

// UpdatePost updates the given blog post.
func (e *Env) UpdatePost(ctx context.Context, id string, changes PostChanges) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	return update(ctx, admin.NewPostDetail(s.ioc, id), func(d *admin.PostDraft) {
		set(&d.Title, changes.Title)
		set(&d.Description, changes.Description)
	})
}

// DeletePost deletes the given blog post once confirmed.
func (e *Env) DeletePost(ctx context.Context, id string, confirmed bool) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	return remove(ctx, e, admin.NewPostDetail(s.ioc, id), confirmed)
}

////////////////////
//                //
// Events         //
//                //
////////////////////

// Events prints the events matching the search term.
func (e *Env) Events(ctx context.Context, search string) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	list := admin.NewEventList(s.ioc)
	list.Load(ctx)
	list.SetSearch(search)

	return e.table(list.State(), "events", func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tDATE\tTITLE\tVENUE\tSTATUS")
		for _, ev := range list.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ev.ID, ev.Date, truncate(ev.Title, 40), truncate(ev.Venue, 30), status(ev))
		}
	})
}

// ShowEvent prints the given event.
func (e *Env) ShowEvent(ctx context.Context, id string, dump bool) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	detail := admin.NewEventDetail(s.ioc, id)
	if err = detail.Load(ctx); err != nil {
		return err
	}
	event, _ := detail.Entity()

	if dump {
		e.printf("%s\n", litter.Sdump(event))
		return nil
	}
	return e.fields(
		"ID", event.ID,
		"Title", event.Title,
		"Description", event.Description,
		"Date", event.Date.String(),
		"Venue", event.Venue,
		"Status", status(event),
		"Image", event.ImageURL,
	)
}

// CreateEvent creates an event.
func (e *Env) CreateEvent(ctx context.Context, in EventInput) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	form := admin.NewEventForm(s.ioc)
	form.Title = in.Title
	form.Description = in.Description
	form.Date = in.Date
	form.Venue = in.Venue
	form.IsActive = !in.Inactive
	if in.Image != "" {
		if err = form.SelectImage(in.Image); err != nil {
			return reported(err)
		}
	}

	return reported(form.Submit(ctx))
}

// UpdateEvent updates the given event.
func (e *Env) UpdateEvent(ctx context.Context, id string, changes EventChanges) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	return update(ctx, admin.NewEventDetail(s.ioc, id), func(d *admin.EventDraft) {
		set(&d.Title, changes.Title)
		set(&d.Description, changes.Description)
		set(&d.Date, changes.Date)
		set(&d.Venue, changes.Venue)
		set(&d.IsActive, changes.Active)
	})
}

// DeleteEvent deletes the given event once confirmed.
func (e *Env) DeleteEvent(ctx context.Context, id string, confirmed bool) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	return remove(ctx, e, admin.NewEventDetail(s.ioc, id), confirmed)
}

////////////////////
//                //
// Gallery        //
//                //
////////////////////

// Gallery prints the gallery images of the category matching the search term.
func (e *Env) Gallery(ctx context.Context, category, search string) error {
	c, err := libcms.ParseCategory(category)
	if err != nil {
		return err
	}

	s, err := e.session()
	if err != nil {
		return err
	}

	list := admin.NewGalleryList(s.ioc)
	list.SetCategory(ctx, c)
	list.SetSearch(search)

	return e.table(list.State(), "images", func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tIMAGE")
		for _, img := range list.Items() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", img.ID, truncate(img.Title, 40), img.Category, img.Image)
		}
	})
}

// CreateGalleryImage adds an image to the gallery.
func (e *Env) CreateGalleryImage(ctx context.Context, in GalleryInput) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	form := admin.NewGalleryForm(s.ioc)
	form.Title = in.Title
	form.Category = in.Category
	if in.Image != "" {
		if err = form.SelectImage(in.Image); err != nil {
			return reported(err)
		}
	}

	return reported(form.Submit(ctx))
}

////////////////////
//                //
// Helpers        //
//                //
////////////////////

func update[T any, D comparable](ctx context.Context, detail *admin.Detail[T, D], apply func(draft *D)) error {
	if err := detail.Load(ctx); err != nil {
		return err
	}
	if err := detail.BeginEdit(); err != nil {
		return err
	}

	draft := detail.Draft()
	apply(&draft)
	if err := detail.SetDraft(draft); err != nil {
		return err
	}

	return reported(detail.Save(ctx))
}

func remove[T any, D comparable](ctx context.Context, e *Env, detail *admin.Detail[T, D], confirmed bool) error {
	if err := detail.Load(ctx); err != nil {
		return err
	}
	if err := detail.RequestDelete(); err != nil {
		return err
	}

	if !confirmed {
		var err error
		confirmed, err = e.Prompt.Confirm(detail.Confirm().Message())
		if err != nil {
			detail.CancelDelete() // nolint:errcheck
			return err
		}
	}

	if !confirmed {
		e.printf("Cancelled\n")
		return detail.CancelDelete()
	}
	return reported(detail.ConfirmDelete(ctx))
}

func (e *Env) table(state admin.ListState, name string, rows func(w *tabwriter.Writer)) error {
	switch state {
	case admin.ListEmpty:
		e.printf("No %s found\n", name)
		return nil
	case admin.ListNoMatch:
		e.printf("No %s match your search\n", name)
		return nil
	}

	w := tabwriter.NewWriter(e.Out, 0, 4, 2, ' ', 0)
	rows(w)
	return w.Flush()
}

func (e *Env) fields(kv ...string) error {
	w := tabwriter.NewWriter(e.Out, 0, 4, 1, ' ', 0)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(w, "%s:\t%s\n", kv[i], kv[i+1])
	}
	return w.Flush()
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func status(e libcms.Event) string {
	if e.Active() {
		return "active"
	}
	return "inactive"
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
