package books

import (
	"github.com/labstack/echo/v4"
	"github.com/tanabooks/tana/pkg/auth"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/uptrace/bun"
)

func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware) {
	h := &handler{
		bookService: NewService(db),
		cfg:         cfg,
	}

	g.GET("", h.list)
	g.POST("", h.create, authMiddleware.Authenticate)
	g.GET("/featured", h.featured)
	g.GET("/genre/:genreName", h.byGenre)
	g.GET("/:slug", h.retrieve)
	g.PUT("/:slug", h.update, authMiddleware.Authenticate)
	g.PATCH("/:slug", h.partialUpdate, authMiddleware.Authenticate)
	g.DELETE("/:slug", h.destroy, authMiddleware.Authenticate)
	g.GET("/:slug/reviews", h.bookReviews)
}
