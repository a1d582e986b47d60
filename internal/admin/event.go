package admin

import (
	"context"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

// An EventForm creates an event. Title, description and date are required.
type EventForm struct {
	createForm
	Title       string
	Description string
	Date        string // Any format understood by libcms.ParseDate
	Venue       string
	IsActive    bool
}

// NewEventForm returns a new EventForm. Events are active by default.
func NewEventForm(ioc IOC) *EventForm {
	return &EventForm{
		createForm: createForm{ioc: ioc},
		IsActive:   true,
	}
}

// Submit validates the form and creates the event.
func (f *EventForm) Submit(ctx context.Context) error {
	var date libcms.Date

	return f.submit(ctx, creation{
		validate: func() (err error) {
			if blank(f.Title) || blank(f.Description) || blank(f.Date) {
				return invalid("Title, description and date are required")
			}

			date, err = libcms.ParseDate(f.Date)
			if err != nil {
				return invalid("Invalid date")
			}
			return nil
		},
		create: func(ctx context.Context, image string) error {
			return f.ioc.Client.CreateEvent(ctx, libcms.EventParams{
				Title:       f.Title,
				Description: f.Description,
				Date:        date,
				Venue:       f.Venue,
				Image:       image,
				IsActive:    f.IsActive,
			})
		},
		clear: func() {
			f.Title = ""
			f.Description = ""
			f.Date = ""
			f.Venue = ""
			f.IsActive = true
		},
		success: "Event created successfully",
		failure: "Failed to create event",
		route:   RouteEvents,
	})
}

// An EventDraft holds the editable fields of an Event.
type EventDraft struct {
	Title       string
	Description string
	Date        string
	Venue       string
	IsActive    bool
}

// EventDraftOf returns the draft initialized from the given event.
func EventDraftOf(e libcms.Event) EventDraft {
	return EventDraft{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.String(),
		Venue:       e.Venue,
		IsActive:    e.Active(),
	}
}

// Params returns the update parameters of the draft.
func (d EventDraft) Params() (libcms.EventParams, error) {
	date, err := libcms.ParseDate(d.Date)
	if err != nil {
		return libcms.EventParams{}, invalid("Invalid date")
	}

	return libcms.EventParams{
		Title:       d.Title,
		Description: d.Description,
		Date:        date,
		Venue:       d.Venue,
		IsActive:    d.IsActive,
	}, nil
}

// NewEventList returns the list of events, searchable on title and description.
func NewEventList(ioc IOC) *List[libcms.Event] {
	return NewList(ioc, "events", ioc.Client.Events, "Title", "Description")
}

// NewEventDetail returns the detail/edit view of the given event.
func NewEventDetail(ioc IOC, id string) *Detail[libcms.Event, EventDraft] {
	return newDetail(ioc, id, detailConfig[libcms.Event, EventDraft]{
		kind:  "event",
		route: RouteEvents,
		fetch: ioc.Client.Event,
		update: func(ctx context.Context, id string, d EventDraft) error {
			params, err := d.Params()
			if err != nil {
				return err
			}
			return ioc.Client.UpdateEvent(ctx, id, params)
		},
		remove: ioc.Client.DeleteEvent,
		draft:  EventDraftOf,
	})
}
