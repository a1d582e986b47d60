// Package tui is the text-based console of cmsadmin.
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gcla/gowid"
	"github.com/gcla/gowid/widgets/columns"
	"github.com/gcla/gowid/widgets/framed"
	"github.com/gcla/gowid/widgets/holder"
	"github.com/gcla/gowid/widgets/list"
	"github.com/gcla/gowid/widgets/pile"
	"github.com/gcla/gowid/widgets/styled"
	"github.com/gcla/gowid/widgets/text"
	"github.com/gdamore/tcell/v2"
	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// StatusDelay is the display duration of a notification.
const StatusDelay = 3 * time.Second

type (
	// Options are the dependencies of the TUI.
	Options struct {
		Client   libcms.Client
		Tokens   *libcms.TokenStore
		Email    string
		Endpoint string
		Logger   *logrus.Logger
	}

	// A TUI is a text-based interface.
	TUI struct {
		App    *gowid.App
		ioc    admin.IOC
		tokens *libcms.TokenStore
		opts   Options

		root   *holder.Widget
		panes  *columns.Widget
		body   *framed.Widget
		status *text.Widget
		clear  func(f func())

		mu     sync.Mutex
		screen context.Context
		cancel context.CancelFunc
	}
)

// New returns a new TUI.
func New(opts Options) (*TUI, error) {
	ui := &TUI{
		tokens: opts.Tokens,
		opts:   opts,
		clear:  debounce.New(StatusDelay),
	}
	ui.screen, ui.cancel = context.WithCancel(context.Background())
	ui.ioc = admin.IOC{
		Client:    opts.Client,
		Notifier:  ui,
		Navigator: ui,
		Logger:    opts.Logger,
	}

	app, err := gowid.NewApp(layout(ui))
	if err != nil {
		return ui, errors.Wrap(err, "could not create application widgets")
	}

	ui.App = app
	ui.show(admin.RouteDashboard, app)
	return ui, nil
}

// Run starts the application and thus the event loop.
func (ui *TUI) Run() {
	ui.App.MainLoop(gowid.UnhandledInputFunc(ui.unhandled))

	ui.mu.Lock()
	ui.cancel()
	ui.mu.Unlock()
}

// Cleanup cleans the application properly (in case of panic).
func (ui *TUI) Cleanup() {
	ui.App.GetScreen().Fini() // Cleanup tcell screen's objects
}

// LoggedOut returns true if the user logged out from the console.
func (ui *TUI) LoggedOut() bool {
	return !ui.tokens.Defined()
}

// Success implements admin.Notifier.
func (ui *TUI) Success(message string) {
	ui.DisplayStatus(message)
}

// Error implements admin.Notifier.
func (ui *TUI) Error(message string) {
	ui.DisplayStatus("Error: " + message)
}

// Navigate implements admin.Navigator.
func (ui *TUI) Navigate(route admin.Route) {
	ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
		ui.show(route, app)
	}))
}

// DisplayStatus displays a message in the status bar (aka notifications).
// The message is cleared once no other message has been displayed for StatusDelay.
func (ui *TUI) DisplayStatus(message string) {
	ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
		ui.status.SetText(message, app)
	}))
	ui.clear(func() {
		ui.App.Run(gowid.RunFunction(func(app gowid.IApp) { // nolint:errcheck
			ui.status.SetText("", app)
		}))
	})
}

// async runs f outside of the event loop with the context of the current screen.
// Workflows perform network I/O and notify through the event loop, so they must never run on it.
func (ui *TUI) async(f func(ctx context.Context)) {
	ui.mu.Lock()
	ctx := ui.screen
	ui.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ui.opts.Logger.Errorf("[PANIC RECOVER] %v", r)
			}
		}()
		f(ctx)
	}()
}

// refresh runs f in the event loop.
func (ui *TUI) refresh(f func(app gowid.IApp)) {
	ui.App.Run(gowid.RunFunction(f)) // nolint:errcheck
}

// open displays the given screen in the body pane. Work belonging to the previous screen is canceled.
func (ui *TUI) open(title string, screen gowid.IWidget, app gowid.IApp) {
	ui.mu.Lock()
	ui.cancel()
	ui.screen, ui.cancel = context.WithCancel(context.Background())
	ui.mu.Unlock()

	ui.body.SetTitle(title, app)
	ui.body.SetSubWidget(screen, app)
	ui.panes.SetFocus(app, 1)
}

func (ui *TUI) show(route admin.Route, app gowid.IApp) {
	switch route {
	case admin.RoutePosts:
		ui.open("Posts", postList(ui), app)
	case admin.RouteEvents:
		ui.open("Events", eventList(ui), app)
	case admin.RouteGallery:
		ui.open("Gallery", galleryList(ui), app)
	case admin.RouteAccount:
		ui.open("Account", account(ui), app)
	case admin.RouteLogin:
		app.Quit()
	default:
		ui.open("Dashboard", dashboard(ui), app)
	}
}

////////////////////
//                //
// Layout         //
//                //
////////////////////

var menu = []struct {
	label string
	route admin.Route
}{
	{"Dashboard", admin.RouteDashboard},
	{"Posts", admin.RoutePosts},
	{"Events", admin.RouteEvents},
	{"Gallery", admin.RouteGallery},
	{"Account", admin.RouteAccount},
}

func layout(ui *TUI) gowid.AppArgs {
	ui.body = framed.NewUnicode(text.New(""))
	ui.status = text.New("")

	entries := make([]gowid.IWidget, 0, len(menu)+1)
	for _, m := range menu {
		route := m.route
		entries = append(entries, action(m.label, func(app gowid.IApp) {
			ui.show(route, app)
		}))
	}
	entries = append(entries, action("Logout", func(app gowid.IApp) {
		go admin.Logout(ui.ioc, ui.tokens) // Navigates to the login screen which quits the console.
	}))

	ui.panes = columns.New([]gowid.IContainerWidget{
		&gowid.ContainerWidget{
			IWidget: styled.New(framed.NewUnicode(list.New(list.NewSimpleListWalker(entries))), gowid.MakePaletteRef("mainpane")),
			D:       gowid.RenderWithWeight{W: 1},
		},
		&gowid.ContainerWidget{
			IWidget: styled.New(ui.body, gowid.MakePaletteRef("mainpane")),
			D:       gowid.RenderWithWeight{W: 5},
		},
	})

	main := pile.New([]gowid.IContainerWidget{
		&gowid.ContainerWidget{IWidget: ui.panes, D: gowid.RenderWithWeight{W: 20}},
		&gowid.ContainerWidget{
			IWidget: styled.New(framed.NewUnicode(ui.status), gowid.MakePaletteRef("mainpane")),
			D:       gowid.RenderWithUnits{U: 3},
		},
	})
	ui.root = holder.New(main)

	return gowid.AppArgs{
		View: ui.root,
		Palette: &gowid.Palette{
			"mainpane": gowid.MakePaletteEntry(gowid.ColorLightGray, gowid.ColorBlack),
			// List style
			"normal":  gowid.MakePaletteEntry(gowid.ColorLightGray, gowid.ColorBlack),
			"focused": gowid.MakePaletteEntry(gowid.ColorBlack, gowid.ColorRed),
			"title":   gowid.MakePaletteEntry(gowid.ColorWhite, gowid.ColorBlack),
		},
		Log: ui.opts.Logger,
	}
}

////////////////////
//                //
// Events         //
//                //
////////////////////

func (ui *TUI) unhandled(app gowid.IApp, ev any) bool {
	evk, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	handled := false

	switch evk.Key() {
	case tcell.KeyCtrlQ:
		handled = true
		app.Quit()
	case tcell.KeyTab:
		handled = true
		ui.panes.SetFocus(app, 1-ui.panes.Focus())
	}

	return handled
}
