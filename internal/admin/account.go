package admin

import (
	"context"

	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
)

// MinPasswordLength is the minimal length of a new password.
const MinPasswordLength = 6

// A LoginForm authenticates the administrator and stores the token.
type LoginForm struct {
	ioc    IOC
	tokens *libcms.TokenStore
	guard  Guard

	Email    string
	Password string
}

// NewLoginForm returns a new LoginForm writing the token in the given store.
func NewLoginForm(ioc IOC, tokens *libcms.TokenStore) *LoginForm {
	return &LoginForm{
		ioc:    ioc,
		tokens: tokens,
	}
}

// Submitting returns true while the form is being submitted.
func (f *LoginForm) Submitting() bool {
	return f.guard.Busy()
}

// Submit performs the login.
func (f *LoginForm) Submit(ctx context.Context) error {
	if !f.guard.Acquire() {
		return ErrBusy
	}
	defer f.guard.Release()

	if blank(f.Email) || f.Password == "" {
		err := invalid("Email and password are required")
		f.ioc.notifier().Error(err.Error())
		return err
	}

	token, err := f.ioc.Client.Login(ctx, f.Email, f.Password)
	if err != nil {
		f.ioc.logger().WithError(err).Warn("login failed")
		f.ioc.notifier().Error(libcms.Message(err, "Login failed"))
		return errors.Wrap(err, "could not login")
	}

	f.tokens.SetToken(token)
	f.Password = ""
	f.ioc.notifier().Success("Login successful")
	f.ioc.navigate(RouteDashboard)
	return nil
}

// Logout forgets the token and goes back to the login screen.
func Logout(ioc IOC, tokens *libcms.TokenStore) {
	tokens.Clear()
	ioc.navigate(RouteLogin)
}

// A PasswordForm changes the administrator's password.
type PasswordForm struct {
	ioc   IOC
	guard Guard

	Current string
	New     string
	Confirm string
}

// NewPasswordForm returns a new PasswordForm.
func NewPasswordForm(ioc IOC) *PasswordForm {
	return &PasswordForm{ioc: ioc}
}

// Submitting returns true while the form is being submitted.
func (f *PasswordForm) Submitting() bool {
	return f.guard.Busy()
}

// Submit validates the form and updates the password.
// All the fields are reset on success.
func (f *PasswordForm) Submit(ctx context.Context) error {
	if !f.guard.Acquire() {
		return ErrBusy
	}
	defer f.guard.Release()

	if err := f.validate(); err != nil {
		f.ioc.notifier().Error(err.Error())
		return err
	}

	if err := f.ioc.Client.UpdatePassword(ctx, f.Current, f.New); err != nil {
		f.ioc.logger().WithError(err).Warn("could not change password")
		f.ioc.notifier().Error(libcms.Message(err, "Failed to change password"))
		return errors.Wrap(err, "could not change password")
	}

	f.Current = ""
	f.New = ""
	f.Confirm = ""
	f.ioc.notifier().Success("Password changed successfully")
	return nil
}

func (f *PasswordForm) validate() error {
	switch {
	case f.Current == "" || f.New == "" || f.Confirm == "":
		return invalid("All fields are required")
	case f.New != f.Confirm:
		return invalid("Passwords do not match")
	case len([]rune(f.New)) < MinPasswordLength:
		return invalid("Password must be at least 6 characters")
	}
	return nil
}
