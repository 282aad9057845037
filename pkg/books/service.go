package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tanabooks/tana/pkg/database"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/tanabooks/tana/pkg/slugify"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID   *int
	Slug *string
	// WithRelations loads the author, publisher, and reviews needed for the
	// detail representation.
	WithRelations bool
}

// ListBooksOptions is the composed query over the book collection: an
// immutable filter specification built once from validated request
// parameters, then handed to the store. Filters are AND-combined; the
// search term is OR-combined across title, author name, and isbn.
type ListBooksOptions struct {
	Limit         *int
	Offset        *int
	Search        *string
	Language      *string
	Genre         *string
	PublishedDate *string
	MinRating     *float64
	// Ordering is the raw request value; only allow-listed fields take
	// effect, anything else falls back to the default order.
	Ordering *string

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

// DefaultOrdering is published date, newest first.
const DefaultOrdering = "b.published_date DESC"

var orderableColumns = map[string]string{
	"title":          "b.title",
	"published_date": "b.published_date",
	"rating":         "b.rating",
}

// resolveOrdering maps a requested ordering field onto an ORDER BY
// expression. Unrecognized fields are ignored in favor of the default order
// rather than failing the request.
func resolveOrdering(ordering *string) string {
	if ordering == nil {
		return DefaultOrdering
	}
	field := *ordering
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")
	column, ok := orderableColumns[field]
	if !ok {
		return DefaultOrdering
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook persists a new book. The slug is derived from the title when
// the caller didn't supply one; slug and isbn uniqueness are enforced by the
// store's unique indexes, surfaced here as conflict errors.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	if book.Slug == "" {
		// A title with no letters or digits derives an empty slug, which
		// can't address the book.
		book.Slug = slugify.From(book.Title)
		if book.Slug == "" {
			return errcodes.ValidationFailed(map[string]string{
				"title": "must contain at least one letter or number",
			})
		}
	} else if slugify.From(book.Slug) != book.Slug {
		return errcodes.ValidationFailed(map[string]string{
			"slug": "must contain only lowercase letters, numbers, and single hyphens",
		})
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := checkReferences(ctx, tx, book); err != nil {
			return err
		}

		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			if _, column, ok := database.UniqueViolation(err); ok {
				return errcodes.Conflict(column)
			}
			return errors.WithStack(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// checkReferences verifies the author (and publisher, when set) exist inside
// the same transaction as the write that references them.
func checkReferences(ctx context.Context, tx bun.Tx, book *models.Book) error {
	fields := map[string]string{}

	exists, err := tx.NewSelect().
		Model((*models.Author)(nil)).
		Where("a.id = ?", book.AuthorID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		fields["author_id"] = "does not reference an existing author"
	}

	if book.PublisherID != nil {
		exists, err := tx.NewSelect().
			Model((*models.Publisher)(nil)).
			Where("p.id = ?", *book.PublisherID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			fields["publisher_id"] = "does not reference an existing publisher"
		}
	}

	if len(fields) > 0 {
		return errcodes.ValidationFailed(fields)
	}
	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.WithRelations {
		q = q.
			Relation("Author").
			Relation("Publisher").
			Relation("Reviews", func(sq *bun.SelectQuery) *bun.SelectQuery {
				return sq.Order("r.created_at DESC")
			})
	}

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.Slug != nil {
		q = q.Where("b.slug = ?", *opts.Slug)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, err
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		OrderExpr(resolveOrdering(opts.Ordering))

	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + strings.ToLower(*opts.Search) + "%"
		q = q.Where(
			"(LOWER(b.title) LIKE ? OR b.author_id IN (SELECT id FROM authors WHERE LOWER(name) LIKE ?) OR LOWER(b.isbn) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if opts.Language != nil {
		q = q.Where("b.language = ?", *opts.Language)
	}
	if opts.Genre != nil {
		q = q.Where("b.genre = ?", *opts.Genre)
	}
	if opts.PublishedDate != nil {
		q = q.Where("b.published_date = ?", *opts.PublishedDate)
	}
	if opts.MinRating != nil {
		q = q.Where("b.rating >= ?", *opts.MinRating)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

// UpdateBook writes the given columns of an existing book. The slug column
// is never part of an update; title edits don't regenerate it.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, col := range opts.Columns {
			if col == "author_id" || col == "publisher_id" {
				if err := checkReferences(ctx, tx, book); err != nil {
					return err
				}
				break
			}
		}

		_, err := tx.
			NewUpdate().
			Model(book).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			if _, column, ok := database.UniqueViolation(err); ok {
				return errcodes.Conflict(column)
			}
			return errors.WithStack(err)
		}
		return nil
	})

	return err
}

// DeleteBook removes a book. Its reviews cascade at the store level.
func (svc *Service) DeleteBook(ctx context.Context, book *models.Book) error {
	_, err := svc.db.
		NewDelete().
		Model(book).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// ListBookReviews returns every review of one book, newest first,
// unpaginated.
func (svc *Service) ListBookReviews(ctx context.Context, bookID int) ([]*models.Review, error) {
	reviews := []*models.Review{}
	err := svc.db.
		NewSelect().
		Model(&reviews).
		Where("r.book_id = ?", bookID).
		Order("r.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return reviews, nil
}
