package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/tanabooks/tana/pkg/auth"
	"github.com/tanabooks/tana/pkg/authors"
	"github.com/tanabooks/tana/pkg/binder"
	"github.com/tanabooks/tana/pkg/books"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/publishers"
	"github.com/tanabooks/tana/pkg/reviews"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	// Reads are public; each group gates its writes per route.
	books.RegisterRoutesWithGroup(e.Group("/books"), db, cfg, authMiddleware)
	authors.RegisterRoutesWithGroup(e.Group("/authors"), db, cfg, authMiddleware)
	publishers.RegisterRoutesWithGroup(e.Group("/publishers"), db, cfg, authMiddleware)
	reviews.RegisterRoutesWithGroup(e.Group("/reviews"), db, cfg, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
