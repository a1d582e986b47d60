package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/holder"
	"github.com/gcla/gowid/widgets/list"
	"github.com/gcla/gowid/widgets/text"
	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

// A listView renders an admin.List with its search field.
type listView[T any] struct {
	ui    *TUI
	list  *admin.List[T]
	name  string
	label func(item T) string
	open  func(item T, app gowid.IApp) // nil when items can't be opened

	rows    *holder.Widget
	counter *text.Widget
}

func newListView[T any](ui *TUI, l *admin.List[T], name string, label func(item T) string) *listView[T] {
	return &listView[T]{
		ui:      ui,
		list:    l,
		name:    name,
		label:   label,
		rows:    holder.New(text.New("Loading...")),
		counter: text.New(""),
	}
}

// widget returns the screen and starts loading the items.
func (v *listView[T]) widget(header ...gowid.IWidget) gowid.IWidget {
	search := input("Search: ", v.list.Search())
	search.OnTextSet(gowid.WidgetCallback{Name: "cb", WidgetChangedFunction: func(app gowid.IApp, _ gowid.IWidget) {
		v.list.SetSearch(search.Text())
		v.render(app)
	}})

	v.reload(v.list.Load)

	widgets := append(header, search, v.counter, fill(v.rows))
	return stack(widgets...)
}

// reload fetches the items with load and renders them.
func (v *listView[T]) reload(load func(ctx context.Context)) {
	v.ui.async(func(ctx context.Context) {
		load(ctx)
		v.ui.refresh(v.render)
	})
}

func (v *listView[T]) render(app gowid.IApp) {
	v.counter.SetText("", app)

	switch v.list.State() {
	case admin.ListLoading:
		v.rows.SetSubWidget(text.New("Loading..."), app)
	case admin.ListEmpty:
		v.rows.SetSubWidget(text.New(fmt.Sprintf("No %s yet", v.name)), app)
	case admin.ListNoMatch:
		v.rows.SetSubWidget(text.New(fmt.Sprintf("No %s match your search", v.name)), app)
	default:
		items := v.list.Items()
		v.counter.SetText(fmt.Sprintf("%d of %d %s", len(items), v.list.Total(), v.name), app)

		widgets := make([]gowid.IWidget, 0, len(items))
		for _, item := range items {
			item := item
			if v.open == nil {
				widgets = append(widgets, text.New(v.label(item)))
				continue
			}
			widgets = append(widgets, action(v.label(item), func(app gowid.IApp) {
				v.open(item, app)
			}))
		}
		v.rows.SetSubWidget(list.New(list.NewSimpleListWalker(widgets)), app)
	}
}

////////////////////
//                //
// Screens        //
//                //
////////////////////

func postList(ui *TUI) gowid.IWidget {
	v := newListView(ui, admin.NewPostList(ui.ioc), "posts", func(p libcms.Post) string {
		return fmt.Sprintf("%s - %s", p.Title, oneline(p.Description, 60))
	})
	v.open = func(p libcms.Post, app gowid.IApp) {
		ui.open("Post", postDetail(ui, p.ID), app)
	}

	return v.widget(toolbar(action("Add post", func(app gowid.IApp) {
		ui.open("Add post", postForm(ui), app)
	})))
}

func eventList(ui *TUI) gowid.IWidget {
	v := newListView(ui, admin.NewEventList(ui.ioc), "events", func(e libcms.Event) string {
		label := fmt.Sprintf("%s  %s", e.Date, e.Title)
		if e.Venue != "" {
			label += " @ " + e.Venue
		}
		if !e.Active() {
			label += " (inactive)"
		}
		return label
	})
	v.open = func(e libcms.Event, app gowid.IApp) {
		ui.open("Event", eventDetail(ui, e.ID), app)
	}

	return v.widget(toolbar(action("Add event", func(app gowid.IApp) {
		ui.open("Add event", eventForm(ui), app)
	})))
}

func galleryList(ui *TUI) gowid.IWidget {
	g := admin.NewGalleryList(ui.ioc)
	v := newListView(ui, g.List, "images", func(img libcms.GalleryImage) string {
		category := string(img.Category)
		if category == "" {
			category = "-"
		}
		return fmt.Sprintf("[%s] %s  %s", category, img.Title, img.Image)
	})

	filter := func(category libcms.Category) gowid.IWidget {
		label := string(category)
		if label == "" {
			label = "all"
		}
		return action(label, func(gowid.IApp) {
			v.reload(func(ctx context.Context) {
				g.SetCategory(ctx, category)
			})
		})
	}

	categories := []gowid.IWidget{filter("")}
	for _, c := range libcms.Categories {
		categories = append(categories, filter(c))
	}

	return v.widget(
		toolbar(action("Add image", func(app gowid.IApp) {
			ui.open("Add image", galleryForm(ui), app)
		})),
		toolbar(categories...),
	)
}

func oneline(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
