package books

import (
	"math"
	"time"

	"github.com/tanabooks/tana/pkg/models"
)

// The two response shapes for a book are fixed per operation: list,
// featured, and by-genre use the narrow list shape; every other operation
// that returns book data uses the detail shape. The choice lives in the
// handler for each operation, not in runtime inspection of the payload.

// AuthorRef is the compact author reference embedded in the list shape.
type AuthorRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// BookList is the narrow representation for bulk traversal. It deliberately
// excludes pages, cover image, language, description, price, and
// timestamps.
type BookList struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Author        AuthorRef `json:"author"`
	PublishedDate string    `json:"published_date"`
	ISBN          string    `json:"isbn"`
	Genre         string    `json:"genre"`
	Rating        *float64  `json:"rating"`
}

// ReviewSummary is a review nested under a book, without the book backref.
type ReviewSummary struct {
	ID        int       `json:"id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetail is the full representation: every attribute plus the resolved
// author and publisher, the nested reviews, and the computed average rating.
type BookDetail struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Author        *models.Author    `json:"author"`
	Publisher     *models.Publisher `json:"publisher"`
	PublishedDate string            `json:"published_date"`
	ISBN          string            `json:"isbn"`
	Pages         int               `json:"pages"`
	CoverImage    *string           `json:"cover_image"`
	Language      string            `json:"language"`
	Genre         string            `json:"genre"`
	Description   *string           `json:"description"`
	Price         *float64          `json:"price"`
	Rating        *float64          `json:"rating"`
	Reviews       []ReviewSummary   `json:"reviews"`
	AverageRating *float64          `json:"average_rating"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewBookList(book *models.Book) BookList {
	rep := BookList{
		ID:            book.ID,
		Title:         book.Title,
		Slug:          book.Slug,
		PublishedDate: book.PublishedDate,
		ISBN:          book.ISBN,
		Genre:         book.Genre,
		Rating:        book.Rating,
	}
	if book.Author != nil {
		rep.Author = AuthorRef{ID: book.Author.ID, Name: book.Author.Name}
	} else {
		rep.Author = AuthorRef{ID: book.AuthorID}
	}
	return rep
}

func NewBookListSlice(books []*models.Book) []BookList {
	reps := make([]BookList, 0, len(books))
	for _, book := range books {
		reps = append(reps, NewBookList(book))
	}
	return reps
}

func NewBookDetail(book *models.Book) BookDetail {
	reviews := make([]ReviewSummary, 0, len(book.Reviews))
	for _, review := range book.Reviews {
		reviews = append(reviews, ReviewSummary{
			ID:        review.ID,
			UserName:  review.UserName,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return BookDetail{
		ID:            book.ID,
		Title:         book.Title,
		Slug:          book.Slug,
		Author:        book.Author,
		Publisher:     book.Publisher,
		PublishedDate: book.PublishedDate,
		ISBN:          book.ISBN,
		Pages:         book.Pages,
		CoverImage:    book.CoverImage,
		Language:      book.Language,
		Genre:         book.Genre,
		Description:   book.Description,
		Price:         book.Price,
		Rating:        book.Rating,
		Reviews:       reviews,
		AverageRating: averageRating(book.Reviews),
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

// averageRating is the arithmetic mean of the review ratings, rounded to
// two decimal places. It's absent, not zero, when there are no reviews.
func averageRating(reviews []*models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	mean := math.Round(float64(sum)/float64(len(reviews))*100) / 100
	return &mean
}
