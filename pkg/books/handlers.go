package books

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/tanabooks/tana/pkg/pagination"
)

type handler struct {
	bookService *Service
	cfg         *config.Config
}

// featuredMinRating is the rating floor for the featured collection.
const featuredMinRating = 4.0

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit := h.cfg.PageSize
	offset := pagination.Offset(params.Page, h.cfg.PageSize)

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:         &limit,
		Offset:        &offset,
		Search:        params.Search,
		Language:      params.Language,
		Genre:         params.Genre,
		PublishedDate: params.PublishedDate,
		Ordering:      params.Ordering,
	})
	if err != nil {
		return err
	}

	page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, total, NewBookListSlice(books))
	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:         params.Title,
		AuthorID:      params.AuthorID,
		PublisherID:   params.PublisherID,
		PublishedDate: params.PublishedDate,
		ISBN:          params.ISBN,
		Pages:         params.Pages,
		CoverImage:    params.CoverImage,
		Language:      params.Language,
		Genre:         params.Genre,
		Description:   params.Description,
		Price:         params.Price,
		Rating:        params.Rating,
	}
	if params.Slug != nil {
		book.Slug = *params.Slug
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return err
	}

	created, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:            &book.ID,
		WithRelations: true,
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusCreated, NewBookDetail(created)))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		Slug:          &slug,
		WithRelations: true,
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewBookDetail(book)))
}

// update is the full replacement write. It takes the same contract as
// create, but the slug stays whatever it was at creation.
func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{Slug: &slug})
	if err != nil {
		return err
	}

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book.Title = params.Title
	book.AuthorID = params.AuthorID
	book.PublisherID = params.PublisherID
	book.PublishedDate = params.PublishedDate
	book.ISBN = params.ISBN
	book.Pages = params.Pages
	book.CoverImage = params.CoverImage
	book.Language = params.Language
	book.Genre = params.Genre
	book.Description = params.Description
	book.Price = params.Price
	book.Rating = params.Rating

	columns := []string{
		"title", "author_id", "publisher_id", "published_date", "isbn",
		"pages", "cover_image", "language", "genre", "description",
		"price", "rating",
	}
	if err := h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns}); err != nil {
		return err
	}

	updated, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:            &book.ID,
		WithRelations: true,
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewBookDetail(updated)))
}

func (h *handler) partialUpdate(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{Slug: &slug})
	if err != nil {
		return err
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Title != nil {
		book.Title = *params.Title
		columns = append(columns, "title")
	}
	if params.AuthorID != nil {
		book.AuthorID = *params.AuthorID
		columns = append(columns, "author_id")
	}
	if params.PublisherID != nil {
		book.PublisherID = params.PublisherID
		columns = append(columns, "publisher_id")
	}
	if params.PublishedDate != nil {
		book.PublishedDate = *params.PublishedDate
		columns = append(columns, "published_date")
	}
	if params.ISBN != nil {
		book.ISBN = *params.ISBN
		columns = append(columns, "isbn")
	}
	if params.Pages != nil {
		book.Pages = *params.Pages
		columns = append(columns, "pages")
	}
	if params.CoverImage != nil {
		book.CoverImage = params.CoverImage
		columns = append(columns, "cover_image")
	}
	if params.Language != nil {
		book.Language = *params.Language
		columns = append(columns, "language")
	}
	if params.Genre != nil {
		book.Genre = *params.Genre
		columns = append(columns, "genre")
	}
	if params.Description != nil {
		book.Description = params.Description
		columns = append(columns, "description")
	}
	if params.Price != nil {
		book.Price = params.Price
		columns = append(columns, "price")
	}
	if params.Rating != nil {
		book.Rating = params.Rating
		columns = append(columns, "rating")
	}

	if err := h.bookService.UpdateBook(ctx, book, UpdateBookOptions{Columns: columns}); err != nil {
		return err
	}

	updated, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:            &book.ID,
		WithRelations: true,
	})
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, NewBookDetail(updated)))
}

func (h *handler) destroy(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{Slug: &slug})
	if err != nil {
		return err
	}

	if err := h.bookService.DeleteBook(ctx, book); err != nil {
		return err
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

// featured lists books rated 4.0 or higher, best first.
func (h *handler) featured(c echo.Context) error {
	ctx := c.Request().Context()

	params := PageQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit := h.cfg.PageSize
	offset := pagination.Offset(params.Page, h.cfg.PageSize)
	minRating := featuredMinRating
	ordering := "-rating"

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:     &limit,
		Offset:    &offset,
		MinRating: &minRating,
		Ordering:  &ordering,
	})
	if err != nil {
		return err
	}

	page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, total, NewBookListSlice(books))
	return errors.WithStack(c.JSON(http.StatusOK, page))
}

// byGenre lists books of the genre named in the path. A genre with no books,
// known or not, yields an empty page rather than an error.
func (h *handler) byGenre(c echo.Context) error {
	ctx := c.Request().Context()
	genre := c.Param("genreName")

	params := PageQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Unknown genres can't have books; skip the store round trip.
	if !models.ValidGenre(genre) {
		page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, 0, []BookList{})
		return errors.WithStack(c.JSON(http.StatusOK, page))
	}

	limit := h.cfg.PageSize
	offset := pagination.Offset(params.Page, h.cfg.PageSize)

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  &limit,
		Offset: &offset,
		Genre:  &genre,
	})
	if err != nil {
		return err
	}

	page := pagination.NewPage(c.Request(), params.Page, h.cfg.PageSize, total, NewBookListSlice(books))
	return errors.WithStack(c.JSON(http.StatusOK, page))
}

// bookReviews lists every review of the addressed book, newest first.
func (h *handler) bookReviews(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{Slug: &slug})
	if err != nil {
		return err
	}

	reviews, err := h.bookService.ListBookReviews(ctx, book.ID)
	if err != nil {
		return err
	}

	summaries := make([]ReviewSummary, 0, len(reviews))
	for _, review := range reviews {
		summaries = append(summaries, ReviewSummary{
			ID:        review.ID,
			UserName:  review.UserName,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return errors.WithStack(c.JSON(http.StatusOK, summaries))
}
