package main

import (
	"context"

	"github.com/robinjoseph08/golib/logger"
	"github.com/tanabooks/tana/pkg/authors"
	"github.com/tanabooks/tana/pkg/books"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/tanabooks/tana/pkg/database"
	"github.com/tanabooks/tana/pkg/migrations"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/tanabooks/tana/pkg/publishers"
	"github.com/tanabooks/tana/pkg/reviews"
)

func ptr[T any](v T) *T {
	return &v
}

// Seeds a small sample catalog for local development. Safe to run only
// against a fresh database; reruns will hit the unique slug and isbn
// indexes.
func main() {
	ctx := context.Background()
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		log.Err(err).Fatal("migrations error")
	}

	authorService := authors.NewService(db)
	publisherService := publishers.NewService(db)
	bookService := books.NewService(db)
	reviewService := reviews.NewService(db)

	ursula := &models.Author{
		Name:      "Ursula K. Le Guin",
		Biography: ptr("American author of speculative fiction."),
		BirthDate: ptr("1929-10-21"),
	}
	octavia := &models.Author{
		Name:      "Octavia E. Butler",
		Biography: ptr("American science fiction author."),
		BirthDate: ptr("1947-06-22"),
	}
	for _, author := range []*models.Author{ursula, octavia} {
		if err := authorService.CreateAuthor(ctx, author); err != nil {
			log.Err(err).Fatal("seed author error")
		}
	}

	harper := &models.Publisher{
		Name:    "Harper Voyager",
		Website: ptr("https://www.harpervoyagerbooks.com"),
	}
	if err := publisherService.CreatePublisher(ctx, harper); err != nil {
		log.Err(err).Fatal("seed publisher error")
	}

	sampleBooks := []*models.Book{
		{
			Title:         "The Left Hand of Darkness",
			AuthorID:      ursula.ID,
			PublisherID:   &harper.ID,
			PublishedDate: "1969-03-01",
			ISBN:          "9780441478125",
			Pages:         304,
			Language:      "en",
			Genre:         "sci_fi",
			Rating:        ptr(4.5),
			Price:         ptr(9.99),
		},
		{
			Title:         "A Wizard of Earthsea",
			AuthorID:      ursula.ID,
			PublishedDate: "1968-11-01",
			ISBN:          "9780547773742",
			Pages:         183,
			Language:      "en",
			Genre:         "fantasy",
			Rating:        ptr(4.2),
		},
		{
			Title:         "Kindred",
			AuthorID:      octavia.ID,
			PublishedDate: "1979-06-01",
			ISBN:          "9780807083697",
			Pages:         264,
			Language:      "en",
			Genre:         "sci_fi",
			Rating:        ptr(4.8),
		},
	}
	for _, book := range sampleBooks {
		if err := bookService.CreateBook(ctx, book); err != nil {
			log.Err(err).Fatal("seed book error")
		}
	}

	sampleReviews := []*models.Review{
		{BookID: sampleBooks[0].ID, UserName: "genly", Rating: 5, Comment: "Changed how I think about gender and loyalty."},
		{BookID: sampleBooks[0].ID, UserName: "estraven", Rating: 4, Comment: "Slow start, unforgettable ending."},
		{BookID: sampleBooks[2].ID, UserName: "dana", Rating: 5, Comment: "Harrowing and essential."},
	}
	for _, review := range sampleReviews {
		if err := reviewService.CreateReview(ctx, review); err != nil {
			log.Err(err).Fatal("seed review error")
		}
	}

	log.Info("seed complete", logger.Data{
		"authors":    2,
		"publishers": 1,
		"books":      len(sampleBooks),
		"reviews":    len(sampleReviews),
	})

	if err := db.Close(); err != nil {
		log.Err(err).Error("database close error")
	}
}
