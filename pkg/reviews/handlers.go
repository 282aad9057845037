package reviews

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/tanabooks/tana/pkg/pagination"
)

type handler struct {
	reviewService *Service
	cfg           *config.Config
}

func reviewID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errcodes.NotFound("Review")
	}
	return id, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListReviewsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit := h.cfg.PageSize
	offset := pagination.Offset(params.Page, h.cfg.PageSize)

	reviews, total, err := h.reviewService.ListReviewsWithTotal(ctx, ListReviewsOptions{
		Limit:  &limit,
		Offset: &offset,
		BookID: params.BookID,
		Rating: params.Rating,
	})
	if err != nil {
		return err
	}

	page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, total, reviews)
	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	review := &models.Review{
		BookID:   params.BookID,
		UserName: params.UserName,
		Rating:   params.Rating,
		Comment:  params.Comment,
	}

	if err := h.reviewService.CreateReview(ctx, review); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, review))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := reviewID(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.RetrieveReview(ctx, id)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, review))
}

func (h *handler) partialUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := reviewID(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.RetrieveReview(ctx, id)
	if err != nil {
		return err
	}

	params := UpdateReviewPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Rating != nil {
		review.Rating = *params.Rating
		columns = append(columns, "rating")
	}
	if params.Comment != nil {
		review.Comment = *params.Comment
		columns = append(columns, "comment")
	}

	if err := h.reviewService.UpdateReview(ctx, review, UpdateReviewOptions{Columns: columns}); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, review))
}

func (h *handler) destroy(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := reviewID(c)
	if err != nil {
		return err
	}

	review, err := h.reviewService.RetrieveReview(ctx, id)
	if err != nil {
		return err
	}

	if err := h.reviewService.DeleteReview(ctx, review); err != nil {
		return err
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
