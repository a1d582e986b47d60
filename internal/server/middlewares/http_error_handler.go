package middlewares

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/cmsadmin/internal/apierror"
)

// HTTPErrorHandler is a middleware that formats rendered errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	switch err := err.(type) {
	case *echo.HTTPError:
		if err.Internal != nil {
			log.Printf("Error [ECHO]: %s", err.Internal)
		}
		_ = c.JSON(err.Code, apierror.New(err.Code, fmt.Sprint(err.Message)))
	case *apierror.Error:
		status := apierror.StatusCode(err)
		if status < 500 {
			_ = c.JSON(status, err)
			return
		}

		internal(err, c)
	default:
		internal(err, c)
	}
}

func internal(err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.Printf("Error [%s]: %+v", id, err)

	_ = c.JSON(http.StatusInternalServerError, apierror.New(
		http.StatusInternalServerError,
		fmt.Sprintf("Unexpected error (id: %s)", id),
	))
}
