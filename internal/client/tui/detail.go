package tui

import (
	"context"
	"fmt"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/checkbox"
	"github.com/gcla/gowid/widgets/dialog"
	"github.com/gcla/gowid/widgets/holder"
	"github.com/gcla/gowid/widgets/text"
	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A detailView renders an admin.Detail in read-only or edit mode.
type detailView[T any, D comparable] struct {
	ui     *TUI
	detail *admin.Detail[T, D]
	kind   string
	back   admin.Route
	view   func(entity T) gowid.IWidget
	editor func(draft D) (gowid.IWidget, func() D)

	content *holder.Widget
	read    func() D
}

// widget returns the screen and starts loading the entity.
func (v *detailView[T, D]) widget() gowid.IWidget {
	v.content = holder.New(text.New("Loading..."))
	v.ui.async(func(ctx context.Context) {
		v.detail.Load(ctx) // nolint:errcheck
		v.ui.refresh(v.render)
	})
	return v.content
}

func (v *detailView[T, D]) render(app gowid.IApp) {
	switch v.detail.State() {
	case admin.DetailLoading:
		v.content.SetSubWidget(text.New("Loading..."), app)
	case admin.DetailError:
		message := libcms.Message(v.detail.Err(), fmt.Sprintf("Could not load %s", v.kind))
		if libcms.IsNotFound(v.detail.Err()) {
			message = fmt.Sprintf("%s not found", capitalize(v.kind))
		}
		v.content.SetSubWidget(stack(text.New(message), toolbar(action("Back", v.goBack))), app)
	case admin.DetailViewing:
		entity, _ := v.detail.Entity()
		v.content.SetSubWidget(stack(
			v.view(entity),
			toolbar(action("Edit", v.edit), action("Delete", v.requestDelete), action("Back", v.goBack)),
		), app)
	case admin.DetailEditing:
		var editor gowid.IWidget
		editor, v.read = v.editor(v.detail.Draft())
		v.content.SetSubWidget(stack(
			editor,
			toolbar(action("Save", v.save), action("Cancel", v.cancelEdit), action("Delete", v.requestDelete)),
		), app)
	case admin.DetailDeleting:
		v.content.SetSubWidget(stack(
			text.New(v.detail.Confirm().Message()),
			toolbar(action("Delete", v.confirmDelete), action("Cancel", v.cancelDelete)),
		), app)
	case admin.DetailDeleted:
		v.content.SetSubWidget(text.New(fmt.Sprintf("%s deleted", capitalize(v.kind))), app)
	}
}

func (v *detailView[T, D]) goBack(app gowid.IApp) {
	v.ui.show(v.back, app)
}

func (v *detailView[T, D]) edit(app gowid.IApp) {
	if v.detail.BeginEdit() == nil {
		v.render(app)
	}
}

func (v *detailView[T, D]) cancelEdit(app gowid.IApp) {
	if v.detail.CancelEdit() == nil {
		v.render(app)
	}
}

func (v *detailView[T, D]) save(app gowid.IApp) {
	if v.detail.Busy() || v.detail.SetDraft(v.read()) != nil {
		return
	}

	v.ui.async(func(ctx context.Context) {
		v.detail.Save(ctx) // nolint:errcheck
		v.ui.refresh(v.render)
	})
}

func (v *detailView[T, D]) requestDelete(app gowid.IApp) {
	if v.detail.State() == admin.DetailEditing {
		v.detail.SetDraft(v.read()) // nolint:errcheck
	}
	if v.detail.RequestDelete() != nil {
		return
	}
	v.render(app)

	var d *dialog.Widget
	d = dialog.New(text.New(v.detail.Confirm().Message()), dialog.Options{
		Buttons: []dialog.Button{
			{
				Msg: "Delete",
				Action: gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: func(app gowid.IApp, _ gowid.IWidget) {
					d.Close(app)
					v.confirmDelete(app)
				}},
			},
			{
				Msg: "Cancel",
				Action: gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: func(app gowid.IApp, _ gowid.IWidget) {
					d.Close(app)
					v.cancelDelete(app)
				}},
			},
		},
	})
	d.Open(v.ui.root, gowid.RenderWithRatio{R: 0.5}, app)
}

func (v *detailView[T, D]) confirmDelete(gowid.IApp) {
	v.ui.async(func(ctx context.Context) {
		v.detail.ConfirmDelete(ctx) // nolint:errcheck
		v.ui.refresh(v.render)
	})
}

func (v *detailView[T, D]) cancelDelete(app gowid.IApp) {
	if v.detail.CancelDelete() == nil {
		v.render(app)
	}
}

////////////////////
//                //
// Screens        //
//                //
////////////////////

func postDetail(ui *TUI, id string) gowid.IWidget {
	v := &detailView[libcms.Post, admin.PostDraft]{
		ui:     ui,
		detail: admin.NewPostDetail(ui.ioc, id),
		kind:   "post",
		back:   admin.RoutePosts,
		view: func(p libcms.Post) gowid.IWidget {
			return stack(
				title(p.Title),
				text.New(p.Description),
				text.New("Image: "+p.ImageURL),
			)
		},
		editor: func(d admin.PostDraft) (gowid.IWidget, func() admin.PostDraft) {
			heading := input("Title: ", d.Title)
			description := input("Description: ", d.Description)

			return stack(heading, description), func() admin.PostDraft {
				return admin.PostDraft{
					Title:       heading.Text(),
					Description: description.Text(),
				}
			}
		},
	}
	return v.widget()
}

func eventDetail(ui *TUI, id string) gowid.IWidget {
	v := &detailView[libcms.Event, admin.EventDraft]{
		ui:     ui,
		detail: admin.NewEventDetail(ui.ioc, id),
		kind:   "event",
		back:   admin.RouteEvents,
		view: func(e libcms.Event) gowid.IWidget {
			status := "Active"
			if !e.Active() {
				status = "Inactive"
			}

			return stack(
				title(e.Title),
				text.New(e.Description),
				text.New("Date: "+e.Date.String()),
				text.New("Venue: "+e.Venue),
				text.New("Status: "+status),
				text.New("Image: "+e.ImageURL),
			)
		},
		editor: func(d admin.EventDraft) (gowid.IWidget, func() admin.EventDraft) {
			heading := input("Title: ", d.Title)
			description := input("Description: ", d.Description)
			date := input("Date: ", d.Date)
			venue := input("Venue: ", d.Venue)
			active := checkbox.New(d.IsActive)

			return stack(heading, description, date, venue, toolbar(active, text.New(" Active"))), func() admin.EventDraft {
				return admin.EventDraft{
					Title:       heading.Text(),
					Description: description.Text(),
					Date:        date.Text(),
					Venue:       venue.Text(),
					IsActive:    active.IsChecked(),
				}
			}
		},
	}
	return v.widget()
}

func capitalize(s string) string {
	return cases.Title(language.English).String(s)
}
