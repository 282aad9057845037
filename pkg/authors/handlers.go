package authors

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/tanabooks/tana/pkg/books"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/tanabooks/tana/pkg/pagination"
)

type handler struct {
	authorService *Service
	cfg           *config.Config
}

func authorID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errcodes.NotFound("Author")
	}
	return id, nil
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListAuthorsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit := h.cfg.PageSize
	offset := pagination.Offset(params.Page, h.cfg.PageSize)

	authors, total, err := h.authorService.ListAuthorsWithTotal(ctx, ListAuthorsOptions{
		Limit:  &limit,
		Offset: &offset,
		Search: params.Search,
	})
	if err != nil {
		return err
	}

	page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, total, authors)
	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author := &models.Author{
		Name:      params.Name,
		Biography: params.Biography,
		BirthDate: params.BirthDate,
		Website:   params.Website,
	}

	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, author))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorID(c)
	if err != nil {
		return err
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) partialUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorID(c)
	if err != nil {
		return err
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return err
	}

	params := UpdateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Name != nil {
		author.Name = *params.Name
		columns = append(columns, "name")
	}
	if params.Biography != nil {
		author.Biography = params.Biography
		columns = append(columns, "biography")
	}
	if params.BirthDate != nil {
		author.BirthDate = params.BirthDate
		columns = append(columns, "birth_date")
	}
	if params.Website != nil {
		author.Website = params.Website
		columns = append(columns, "website")
	}

	if err := h.authorService.UpdateAuthor(ctx, author, UpdateAuthorOptions{Columns: columns}); err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) destroy(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorID(c)
	if err != nil {
		return err
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return err
	}

	if err := h.authorService.DeleteAuthor(ctx, author); err != nil {
		return err
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// listBooks returns the author's books in the compact list shape.
func (h *handler) listBooks(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := authorID(c)
	if err != nil {
		return err
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return err
	}

	authorBooks, err := h.authorService.ListAuthorBooks(ctx, author.ID)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, books.NewBookListSlice(authorBooks)))
}
