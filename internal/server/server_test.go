package server_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/mdouchement/cmsadmin/internal/server"
	"github.com/mdouchement/cmsadmin/internal/server/service"
	"github.com/mdouchement/cmsadmin/internal/server/session"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	email    = "george.abitbol@nowhere.lan"
	password = "password42"
)

func TestRequestHome(t *testing.T) {
	engine, _, r := setup(t)

	r.GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, r := setup(t)

	r.GET("/api/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestRestricted(t *testing.T) {
	engine, ctrl, r := setup(t)
	createUser(t, ctrl)

	r.GET("/api/admin/blogs").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"message":"No token provided."}`, r.Body.String())
	})

	r.GET("/api/admin/blogs").SetHeader(gofight.H{"Authorization": "Bearer not-a-jwt"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"message":"Invalid token."}`, r.Body.String())
	})

	// Token signed with another key.
	other := session.NewManager(ctrl.Database, []byte("another-secret"), 0)
	user, err := ctrl.Database.FindUserByMail(email)
	require.NoError(t, err)
	token, err := other.Generate(user)
	require.NoError(t, err)

	r.GET("/api/admin/blogs").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})
}

func TestRequestUnknownUser(t *testing.T) {
	engine, ctrl, r := setup(t)

	sessions := session.NewManager(ctrl.Database, ctrl.SigningKey, 0)
	token, err := sessions.Generate(&model.User{Base: model.Base{ID: "ghost"}})
	require.NoError(t, err)

	r.GET("/api/admin/events").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"message":"No such user for given token."}`, r.Body.String())
	})
}

//
// Helpers
//

func setup(t *testing.T) (engine *echo.Echo, ctrl server.IOC, r *gofight.RequestConfig) {
	filename := filepath.Join(t.TempDir(), "cmsserver.db")

	require.NoError(t, database.StormInit(filename, database.DefaultCodec))
	db, err := database.StormOpen(filename, database.DefaultCodec)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl = server.IOC{
		Version:    "test",
		Database:   db,
		SigningKey: []byte("secret"),
		Silent:     true,
	}
	engine = server.EchoEngine(ctrl)

	return engine, ctrl, gofight.New()
}

func createUser(t *testing.T, ctrl server.IOC) string {
	sessions := session.NewManager(ctrl.Database, ctrl.SigningKey, 0)

	user, err := service.NewUser(ctrl.Database, sessions).Create(email, password)
	require.NoError(t, err)

	token, err := sessions.Generate(user)
	require.NoError(t, err)
	return token
}

func bearer(token string) gofight.H {
	return gofight.H{"Authorization": "Bearer " + token}
}

func pngURI(t *testing.T) string {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return libcms.DataURI("image/png", buf.Bytes())
}

func decode(t *testing.T, r gofight.HTTPResponse, v any) {
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), v))
}
