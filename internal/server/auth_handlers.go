package server

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/cmsadmin/internal/apierror"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/server/service"
	"github.com/mdouchement/cmsadmin/internal/server/session"
)

// auth contains all authentication handlers.
type auth struct {
	db       database.Client
	sessions session.Manager
}

///// Login
////
//

// Login authenticates an administrator and returns a bearer token.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get credentials.")
	}

	if params.Email == "" || params.Password == "" {
		return apierror.BadRequest("Email and password are required")
	}

	token, err := service.NewUser(h.db, h.sessions).Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
	})
}

///// Password
////
//

// UpdatePassword changes the password of the current administrator.
func (h *auth) UpdatePassword(c echo.Context) error {
	// Filter params
	var params service.UpdatePasswordParams
	if err := c.Bind(&params); err != nil {
		log.Println("Could not get parameters:", err)
		return apierror.BadRequest("Could not get parameters.")
	}

	if params.CurrentPassword == "" || params.NewPassword == "" {
		return apierror.BadRequest("All fields are required")
	}

	err := service.NewUser(h.db, h.sessions).Password(currentUser(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Password updated successfully",
	})
}
