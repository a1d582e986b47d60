// Package admin holds the content-management workflows shared by the CLI and the text UI:
// lists, create forms, detail/edit views and account forms.
package admin

import (
	"io"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/sirupsen/logrus"
)

// Routes are the navigation targets of the console.
const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
	RoutePosts     Route = "posts"
	RouteEvents    Route = "events"
	RouteGallery   Route = "gallery"
	RouteAccount   Route = "account"
)

type (
	// A Route identifies a screen of the console.
	Route string

	// A Notifier displays transient notifications.
	Notifier interface {
		// Success notifies a successful action.
		Success(message string)
		// Error notifies a failure.
		Error(message string)
	}

	// A Navigator moves the console to another screen.
	Navigator interface {
		Navigate(route Route)
	}

	// NavigatorFunc is an adapter to use ordinary functions as Navigator.
	NavigatorFunc func(route Route)

	// An IOC is an Inversion Of Control pattern used to init the workflows.
	IOC struct {
		Client    libcms.Client
		Notifier  Notifier
		Navigator Navigator
		Logger    logrus.FieldLogger
	}

	discard struct{}
)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(route Route) {
	f(route)
}

func (ioc IOC) notifier() Notifier {
	if ioc.Notifier == nil {
		return discard{}
	}
	return ioc.Notifier
}

func (ioc IOC) navigate(route Route) {
	if ioc.Navigator != nil {
		ioc.Navigator.Navigate(route)
	}
}

func (ioc IOC) logger() logrus.FieldLogger {
	if ioc.Logger == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		return log
	}
	return ioc.Logger
}

func (discard) Success(string) {}
func (discard) Error(string)   {}
