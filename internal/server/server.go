package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/mdouchement/cmsadmin/internal/server/middlewares"
	"github.com/mdouchement/cmsadmin/internal/server/session"
)

// BodyLimit is the maximum size of a request body, large enough for a base64 encoded 10MB image.
const BodyLimit = "16M"

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	// Token params
	SigningKey []byte
	TokenTTL   time.Duration
	// Silent disables the request logger.
	Silent bool
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())
	engine.Use(middleware.BodyLimit(BodyLimit))

	if !ctrl.Silent {
		engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
		}))
	}
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/api/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.Database, ctrl.SigningKey, ctrl.TokenTTL)

	router := engine.Group("/api")
	restricted := router.Group("")
	restricted.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		db:       ctrl.Database,
		sessions: sessions,
	}
	router.POST("/auth/login", auth.Login)
	restricted.PUT("/admin/update-password", auth.UpdatePassword)

	//
	// content handlers
	//
	content := &content{
		db: ctrl.Database,
	}
	restricted.GET("/admin/blogs", content.Posts)
	restricted.POST("/admin/blogs", content.CreatePost)
	restricted.GET("/admin/blogs/:id", content.Post)
	restricted.PUT("/admin/blogs/:id", content.UpdatePost)
	restricted.DELETE("/admin/blogs/:id", content.DeletePost)

	restricted.GET("/admin/events", content.Events)
	restricted.POST("/admin/events", content.CreateEvent)
	restricted.GET("/admin/events/:id", content.Event)
	restricted.PUT("/admin/events/:id", content.UpdateEvent)
	restricted.DELETE("/admin/events/:id", content.DeleteEvent)

	restricted.GET("/admin/gallery", content.Gallery)
	restricted.POST("/admin/gallery", content.CreateGalleryImage)

	// Images are public, like any static asset of the website.
	router.GET("/uploads/:collection/:id", content.Upload)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
