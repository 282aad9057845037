package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/tanabooks/tana/pkg/auth"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/uptrace/bun"
)

func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware) {
	h := &handler{
		authorService: NewService(db),
		cfg:           cfg,
	}

	g.GET("", h.list)
	g.POST("", h.create, authMiddleware.Authenticate)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.partialUpdate, authMiddleware.Authenticate)
	g.DELETE("/:id", h.destroy, authMiddleware.Authenticate)
	g.GET("/:id/books", h.listBooks)
}
