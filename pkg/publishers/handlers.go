package publishers

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
	publisherService *Service
	cfg              *config.Config
}

func publisherID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errcodes.NotFound("Publisher")
	}
	return id, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListPublishersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit := h.cfg.PageSize
	offset := pagination.Offset(params.Page, h.cfg.PageSize)

	publishers, total, err := h.publisherService.ListPublishersWithTotal(ctx, ListPublishersOptions{
		Limit:  &limit,
		Offset: &offset,
		Search: params.Search,
	})
	if err != nil {
		return err
	}

	page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, total, publishers)
	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreatePublisherPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publisher := &models.Publisher{
		Name:    params.Name,
		Website: params.Website,
		Address: params.Address,
	}

	if err := h.publisherService.CreatePublisher(ctx, publisher); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, publisher))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := publisherID(c)
	if err != nil {
		return err
	}

	publisher, err := h.publisherService.RetrievePublisher(ctx, id)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, publisher))
}

func (h *handler) partialUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := publisherID(c)
	if err != nil {
		return err
	}

	publisher, err := h.publisherService.RetrievePublisher(ctx, id)
	if err != nil {
		return err
	}

	params := UpdatePublisherPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Name != nil {
		publisher.Name = *params.Name
		columns = append(columns, "name")
	}
	if params.Website != nil {
		publisher.Website = params.Website
		columns = append(columns, "website")
	}
	if params.Address != nil {
		publisher.Address = params.Address
		columns = append(columns, "address")
	}

	if err := h.publisherService.UpdatePublisher(ctx, publisher, UpdatePublisherOptions{Columns: columns}); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, publisher))
}

func (h *handler) destroy(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := publisherID(c)
	if err != nil {
		return err
	}

	publisher, err := h.publisherService.RetrievePublisher(ctx, id)
	if err != nil {
		return err
	}

	if err := h.publisherService.DeletePublisher(ctx, publisher); err != nil {
		return err
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
