// Package client implements the cmsadmin commands on top of the admin workflows.
package client

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type (
	// An Env holds what the commands need to run.
	Env struct {
		Settings Settings
		Prompt   Prompter
		Out      io.Writer
		Logger   logrus.FieldLogger
		// HTTP is the client used to reach the backend, a client with Settings.Timeout is used when nil.
		HTTP *http.Client
	}

	// A session is an authenticated access to the backend.
	session struct {
		ioc    admin.IOC
		tokens *libcms.TokenStore
		creds  Credentials
	}

	// printer is the CLI Notifier.
	printer struct {
		out     io.Writer
		success lipgloss.Style
		failure lipgloss.Style
	}

	// reportedError is an error already notified to the user.
	reportedError struct {
		error
	}
)

// Reported returns true if err has already been displayed to the user by a notification.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{error: err}
}

func (e reportedError) Unwrap() error {
	return e.error
}

// NewEnv returns an Env using the terminal.
func NewEnv(settings Settings, logger logrus.FieldLogger) *Env {
	return &Env{
		Settings: settings,
		Prompt:   Terminal(),
		Out:      os.Stdout,
		Logger:   logger,
	}
}

func (e *Env) printf(format string, a ...any) {
	fmt.Fprintf(e.Out, format, a...)
}

func (e *Env) client(endpoint string, tokens *libcms.TokenStore) (libcms.Client, error) {
	c := e.HTTP
	if c == nil {
		c = &http.Client{Timeout: e.Settings.Timeout}
	}

	client, err := libcms.NewClient(c, endpoint, tokens)
	return client, errors.Wrap(err, "could not reach endpoint")
}

func (e *Env) ioc(client libcms.Client) admin.IOC {
	return admin.IOC{
		Client:   client,
		Notifier: newPrinter(e.Out),
		Logger:   e.Logger,
	}
}

// session loads the credentials and returns an authenticated session.
func (e *Env) session() (*session, error) {
	creds, err := LoadCredentials(e.Settings.CredentialsFile, e.Prompt)
	if err != nil {
		return nil, err
	}

	tokens := libcms.NewTokenStore(creds.Token)
	client, err := e.client(creds.Endpoint, tokens)
	if err != nil {
		return nil, err
	}

	return &session{
		ioc:    e.ioc(client),
		tokens: tokens,
		creds:  creds,
	}, nil
}

// newPrinter returns a printer whose colors follow the capabilities of out.
func newPrinter(out io.Writer) printer {
	r := lipgloss.NewRenderer(out)
	return printer{
		out:     out,
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func (p printer) Success(message string) {
	fmt.Fprintln(p.out, p.success.Render(message))
}

func (p printer) Error(message string) {
	fmt.Fprintln(p.out, p.failure.Render("Error: "+message))
}
