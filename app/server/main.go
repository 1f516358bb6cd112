package main

import (
	"fmt"
	"log"

	"github.com/arju88nair/shelvedBackend/app/server/handlers"
	"github.com/arju88nair/shelvedBackend/app/server/inits"
	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/ledger"
	"github.com/arju88nair/shelvedBackend/app/server/middlewares"
	"github.com/arju88nair/shelvedBackend/app/server/summarizer"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Init config
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// Init logging
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	// Init database connection
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// Init redis connection
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// Init JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// Token ledger and collaborators
	lg := ledger.New(db, rdb, l)
	sum := summarizer.NewExtractive()

	// Prepare the handler app
	app := handlers.NewApp(l, db, rdb, j, lg, sum)

	// Prepare the echo server
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Bind routes
	accessAuth := middlewares.AccessAuth(j, lg, l)
	refreshAuth := middlewares.RefreshAuth(j, lg, l)

	api := e.Group("/api")

	api.POST("/auth/signup", app.Signup)
	api.POST("/auth/login", app.Login)
	api.POST("/auth/refresh", app.Refresh, refreshAuth)
	api.DELETE("/auth/logout", app.Logout, accessAuth)
	api.DELETE("/auth/revoke", app.RevokeRefresh, refreshAuth)

	// Boards, with the legacy "categories" aliases
	for _, batch := range []string{"/boards", "/categories"} {
		api.GET(batch, app.BoardList, accessAuth)
		api.POST(batch, app.BoardCreate, accessAuth)
	}
	for _, single := range []string{"/board/:id", "/category/:id"} {
		api.GET(single, app.BoardGet, accessAuth)
		api.PUT(single, app.BoardUpdate, accessAuth)
		api.DELETE(single, app.BoardDelete, accessAuth)
	}

	// Posts, with the legacy "items" aliases
	for _, batch := range []string{"/posts", "/items"} {
		api.GET(batch, app.PostList, accessAuth)
		api.POST(batch, app.PostCreate, accessAuth)
	}
	for _, single := range []string{"/post/:id", "/item/:id"} {
		api.GET(single, app.PostGet, accessAuth)
		api.PUT(single, app.PostUpdate, accessAuth)
		api.DELETE(single, app.PostDelete, accessAuth)
	}

	api.GET("/comments", app.CommentList, accessAuth)
	api.POST("/comments", app.CommentCreate, accessAuth)
	api.GET("/comment/:id", app.CommentThread, accessAuth) // :id is the post id
	api.PUT("/comment/:id", app.CommentUpdate, accessAuth)
	api.DELETE("/comment/:id", app.CommentDelete, accessAuth)

	api.POST("/like", app.Like, accessAuth)
	api.POST("/unlike", app.Unlike, accessAuth)

	api.GET("/by-board/:id", app.PostsByBoard, accessAuth)
	api.GET("/by-category/:id", app.PostsByBoard, accessAuth)

	// Start the echo server
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
