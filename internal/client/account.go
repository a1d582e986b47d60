package client

import (
	"context"

	"github.com/mdouchement/cmsadmin/internal/admin"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
)

// Login authenticates against the backend and seals the token in the credentials file.
func (e *Env) Login(ctx context.Context) error {
	endpoint, err := e.Prompt.Line("Endpoint [" + e.Settings.Endpoint + "]: ")
	if err != nil {
		return err
	}
	if endpoint == "" {
		endpoint = e.Settings.Endpoint
	}

	tokens := libcms.NewTokenStore("")
	client, err := e.client(endpoint, tokens)
	if err != nil {
		return err
	}

	form := admin.NewLoginForm(e.ioc(client), tokens)
	if form.Email, err = e.Prompt.Line("Email: "); err != nil {
		return err
	}
	password, err := e.Prompt.Password("Password: ")
	if err != nil {
		return err
	}
	form.Password = string(password)

	if err = form.Submit(ctx); err != nil {
		return reported(err)
	}

	e.printf("Storing credentials in %s\n", e.Settings.CredentialsFile)
	return SaveCredentials(e.Settings.CredentialsFile, Credentials{
		Endpoint: endpoint,
		Email:    form.Email,
		Token:    tokens.Token(),
	}, e.Prompt)
}

// Logout forgets the token by removing the credentials file.
func (e *Env) Logout() error {
	if err := RemoveCredentials(e.Settings.CredentialsFile); err != nil {
		return err
	}
	e.printf("Logged out\n")
	return nil
}

// Password changes the administrator's password.
func (e *Env) Password(ctx context.Context) error {
	s, err := e.session()
	if err != nil {
		return err
	}

	form := admin.NewPasswordForm(s.ioc)
	for _, field := range []struct {
		prompt string
		value  *string
	}{
		{"Current password: ", &form.Current},
		{"New password: ", &form.New},
		{"Confirm new password: ", &form.Confirm},
	} {
		password, err := e.Prompt.Password(field.prompt)
		if err != nil {
			return err
		}
		*field.value = string(password)
	}

	return reported(form.Submit(ctx))
}
