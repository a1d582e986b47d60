package tui

import (
	"context"
	"fmt"

	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/text"
	"github.com/mdouchement/cmsadmin/internal/admin"
)

func dashboard(ui *TUI) gowid.IWidget {
	stats := text.New("Loading statistics...")

	ui.async(func(ctx context.Context) {
		posts := admin.NewPostList(ui.ioc)
		events := admin.NewEventList(ui.ioc)
		gallery := admin.NewGalleryList(ui.ioc)
		posts.Load(ctx)
		events.Load(ctx)
		gallery.Load(ctx)

		ui.refresh(func(app gowid.IApp) {
			stats.SetText(fmt.Sprintf("Posts: %d    Events: %d    Gallery images: %d",
				posts.Total(), events.Total(), gallery.Total()), app)
		})
	})

	return stack(
		title("Welcome back, "+ui.opts.Email),
		text.New("Connected to "+ui.opts.Endpoint),
		stats,
		text.New(""),
		action("Create New Post    Write and publish a new blog post", func(app gowid.IApp) {
			ui.open("Add post", postForm(ui), app)
		}),
		action("Manage Posts       View, edit or delete existing posts", func(app gowid.IApp) {
			ui.show(admin.RoutePosts, app)
		}),
		action("Manage Events      View, add or edit upcoming events", func(app gowid.IApp) {
			ui.show(admin.RouteEvents, app)
		}),
		action("Manage Gallery     Upload and organize gallery images", func(app gowid.IApp) {
			ui.show(admin.RouteGallery, app)
		}),
		action("Account Settings   Update your admin credentials", func(app gowid.IApp) {
			ui.show(admin.RouteAccount, app)
		}),
		text.New(""),
		text.New("Tab: switch pane    Ctrl-Q: quit"),
	)
}

func account(ui *TUI) gowid.IWidget {
	return stack(
		title("Account"),
		text.New("Email: "+ui.opts.Email),
		text.New("Endpoint: "+ui.opts.Endpoint),
		text.New(""),
		text.New("Run `cmsadmin password` to change your password."),
		text.New(""),
		toolbar(action("Logout", func(gowid.IApp) {
			go admin.Logout(ui.ioc, ui.tokens)
		})),
	)
}
