package reviews

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/tanabooks/tana/pkg/database"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/uptrace/bun"
)

type ListReviewsOptions struct {
	Limit  *int
	Offset *int
	BookID *int
	Rating *int

	includeTotal bool
}

type UpdateReviewOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateReview persists a review. One review per (book, user_name) is
// enforced by the store's unique index and surfaced as a conflict.
func (svc *Service) CreateReview(ctx context.Context, review *models.Review) error {
	review.CreatedAt = time.Now()

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("b.id = ?", review.BookID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.ValidationFailed(map[string]string{
				"book_id": "does not reference an existing book",
			})
		}

		_, err = tx.
			NewInsert().
			Model(review).
			Returning("*").
			Exec(ctx)
		if err != nil {
			if _, _, ok := database.UniqueViolation(err); ok {
				return errcodes.Conflict("user_name")
			}
			return errors.WithStack(err)
		}
		return nil
	})

	return err
}

func (svc *Service) RetrieveReview(ctx context.Context, id int) (*models.Review, error) {
	review := &models.Review{}

	err := svc.db.
		NewSelect().
		Model(review).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Review")
		}
		return nil, errors.WithStack(err)
	}

	return review, nil
}

func (svc *Service) ListReviewsWithTotal(ctx context.Context, opts ListReviewsOptions) ([]*models.Review, int, error) {
	opts.includeTotal = true
	return svc.listReviewsWithTotal(ctx, opts)
}

func (svc *Service) listReviewsWithTotal(ctx context.Context, opts ListReviewsOptions) ([]*models.Review, int, error) {
	reviews := []*models.Review{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&reviews).
		Order("r.created_at DESC")

	if opts.BookID != nil {
		q = q.Where("r.book_id = ?", *opts.BookID)
	}
	if opts.Rating != nil {
		q = q.Where("r.rating = ?", *opts.Rating)
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

	return reviews, total, nil
}

func (svc *Service) UpdateReview(ctx context.Context, review *models.Review, opts UpdateReviewOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	_, err := svc.db.
		NewUpdate().
		Model(review).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) DeleteReview(ctx context.Context, review *models.Review) error {
	_, err := svc.db.
		NewDelete().
		Model(review).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}
