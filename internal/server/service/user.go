package service

import (
	"net/http"

	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/mdouchement/cmsadmin/internal/apierror"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/mdouchement/cmsadmin/internal/server/session"
	"github.com/pkg/errors"
)

type (
	// A UserService handles the administrator accounts.
	UserService interface {
		// Create registers a new administrator.
		Create(email, password string) (*model.User, error)
		// Login authenticates the administrator and returns a new token.
		Login(params LoginParams) (string, error)
		// Password updates the administrator's password.
		Password(user *model.User, params UpdatePasswordParams) error
	}

	// LoginParams are used to login a user.
	LoginParams struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// UpdatePasswordParams are used to update user's password.
	UpdatePasswordParams struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	userService struct {
		db       database.Client
		sessions session.Manager
	}
)

// MinPasswordLength is the minimal length of a password.
const MinPasswordLength = 6

// NewUser returns a new UserService.
func NewUser(db database.Client, sessions session.Manager) UserService {
	return &userService{
		db:       db,
		sessions: sessions,
	}
}

func (s *userService) Create(email, password string) (*model.User, error) {
	if len([]rune(password)) < MinPasswordLength {
		return nil, apierror.BadRequest("Password must be at least 6 characters")
	}

	pw, err := argon2.GenerateFromPasswordString(password, argon2.Default)
	if err != nil {
		return nil, errors.Wrap(err, "could not store user password safe")
	}

	user := &model.User{
		Email:    email,
		Password: pw,
	}

	if err := s.db.Save(user); err != nil {
		if s.db.IsAlreadyExists(err) {
			return nil, apierror.BadRequest("Unable to register.")
		}
		return nil, errors.Wrap(err, "could not persist user")
	}
	return user, nil
}

func (s *userService) Login(params LoginParams) (string, error) {
	// Retrieve user
	user, err := s.db.FindUserByMail(params.Email)
	if err != nil {
		if s.db.IsNotFound(err) {
			return "", apierror.New(http.StatusUnauthorized, "Invalid credentials")
		}
		return "", errors.Wrap(err, "could not get user")
	}

	// Verify password
	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return "", apierror.New(http.StatusUnauthorized, "Invalid credentials")
		}
		return "", errors.Wrap(err, "could not validate password")
	}

	return s.sessions.Generate(user)
}

func (s *userService) Password(user *model.User, params UpdatePasswordParams) error {
	// Verify CurrentPassword
	if err := argon2.CompareHashAndPasswordString(user.Password, params.CurrentPassword); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return apierror.BadRequest("Current password is incorrect")
		}
		return errors.Wrap(err, "could not validate password")
	}

	if len([]rune(params.NewPassword)) < MinPasswordLength {
		return apierror.BadRequest("Password must be at least 6 characters")
	}

	// Crypt & update password
	pw, err := argon2.GenerateFromPasswordString(params.NewPassword, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.Password = pw

	return errors.Wrap(s.db.Save(user), "could not persist user")
}
