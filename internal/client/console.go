package client

import (
	"fmt"
	"runtime"

	"github.com/mdouchement/cmsadmin/internal/client/tui"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Console runs the text-based console.
func (e *Env) Console() (err error) {
	logger := tui.NewLogger(e.Settings.LogFile)

	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case error:
				err = r
			default:
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, true)

			logger.Printf("[PANIC RECOVER] %s %s\n", err, stack[:length])
		}
	}()

	s, err := e.session()
	if err != nil {
		return err
	}

	ui, err := tui.New(tui.Options{
		Client:   s.ioc.Client,
		Tokens:   s.tokens,
		Email:    s.creds.Email,
		Endpoint: s.creds.Endpoint,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer ui.Cleanup()

	logger.WithFields(logrus.Fields{"endpoint": s.creds.Endpoint, "email": s.creds.Email}).Info("console started")
	ui.Run()

	if ui.LoggedOut() {
		return errors.Wrap(e.Logout(), "logout")
	}
	return nil
}
