package books

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanabooks/tana/pkg/database"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/migrations"
	"github.com/tanabooks/tana/pkg/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	require.NoError(t, database.Configure(db, time.Second))

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestAuthor(t *testing.T, db *bun.DB, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name}
	_, err := db.NewInsert().Model(author).Exec(context.Background())
	require.NoError(t, err)
	return author
}

func createTestPublisher(t *testing.T, db *bun.DB, name string) *models.Publisher {
	t.Helper()

	publisher := &models.Publisher{Name: name}
	_, err := db.NewInsert().Model(publisher).Exec(context.Background())
	require.NoError(t, err)
	return publisher
}

func createTestReview(t *testing.T, db *bun.DB, bookID int, userName string, rating int) *models.Review {
	t.Helper()

	review := &models.Review{
		BookID:    bookID,
		UserName:  userName,
		Rating:    rating,
		Comment:   "a comment",
		CreatedAt: time.Now(),
	}
	_, err := db.NewInsert().Model(review).Exec(context.Background())
	require.NoError(t, err)
	return review
}

func newTestBook(author *models.Author, title, isbn, publishedDate string) *models.Book {
	return &models.Book{
		Title:         title,
		AuthorID:      author.ID,
		PublishedDate: publishedDate,
		ISBN:          isbn,
		Pages:         100,
		Language:      models.LanguageDefault,
		Genre:         models.GenreDefault,
	}
}

func countBooks(t *testing.T, db *bun.DB) int {
	t.Helper()

	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestCreateBookDerivesSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Ursula K. Le Guin")

	book := newTestBook(author, "The Left Hand of Darkness", "9780441478125", "1969-03-01")
	require.NoError(t, svc.CreateBook(ctx, book))

	assert.Equal(t, "the-left-hand-of-darkness", book.Slug)
	assert.NotZero(t, book.ID)
}

func TestCreateBookKeepsProvidedSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	book := newTestBook(author, "Some Title", "9780000000001", "2020-01-01")
	book.Slug = "custom-slug"
	require.NoError(t, svc.CreateBook(ctx, book))

	assert.Equal(t, "custom-slug", book.Slug)
}

func TestCreateBookUnsluggableTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	book := newTestBook(author, "!!!", "9780000000001", "2020-01-01")
	err := svc.CreateBook(ctx, book)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Fields, "title")
	assert.Equal(t, 0, countBooks(t, db))
}

func TestCreateBookRejectsMalformedSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	book := newTestBook(author, "Some Title", "9780000000001", "2020-01-01")
	book.Slug = "Not A Slug!"
	err := svc.CreateBook(ctx, book)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "slug")
	assert.Equal(t, 0, countBooks(t, db))
}

func TestCreateBookDuplicateSlugConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	first := newTestBook(author, "Duplicate Title", "9780000000001", "2020-01-01")
	require.NoError(t, svc.CreateBook(ctx, first))

	second := newTestBook(author, "Duplicate Title", "9780000000002", "2021-01-01")
	err := svc.CreateBook(ctx, second)
	require.Error(t, err)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Equal(t, 1, countBooks(t, db))
}

func TestCreateBookDuplicateISBNConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	first := newTestBook(author, "First Book", "9780000000001", "2020-01-01")
	require.NoError(t, svc.CreateBook(ctx, first))

	second := newTestBook(author, "Second Book", "9780000000001", "2021-01-01")
	err := svc.CreateBook(ctx, second)
	require.Error(t, err)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Contains(t, appErr.Fields, "isbn")

	// The failed write must not leave anything behind.
	assert.Equal(t, 1, countBooks(t, db))
}

func TestCreateBookUnknownAuthorFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{
		Title:         "Orphan Book",
		AuthorID:      999,
		PublishedDate: "2020-01-01",
		ISBN:          "9780000000001",
		Pages:         100,
		Language:      "en",
		Genre:         "fiction",
	}
	err := svc.CreateBook(ctx, book)
	require.Error(t, err)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Contains(t, appErr.Fields, "author_id")
	assert.Equal(t, 0, countBooks(t, db))
}

func TestRetrieveBookBySlugWithRelations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Octavia E. Butler")
	publisher := createTestPublisher(t, db, "Beacon Press")

	book := newTestBook(author, "Kindred", "9780807083697", "1979-06-01")
	book.PublisherID = &publisher.ID
	require.NoError(t, svc.CreateBook(ctx, book))
	createTestReview(t, db, book.ID, "dana", 5)
	createTestReview(t, db, book.ID, "kevin", 4)

	slug := "kindred"
	got, err := svc.RetrieveBook(ctx, RetrieveBookOptions{Slug: &slug, WithRelations: true})
	require.NoError(t, err)

	require.NotNil(t, got.Author)
	assert.Equal(t, "Octavia E. Butler", got.Author.Name)
	require.NotNil(t, got.Publisher)
	assert.Equal(t, "Beacon Press", got.Publisher.Name)
	assert.Len(t, got.Reviews, 2)
}

func TestRetrieveBookNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	slug := "does-not-exist"
	_, err := svc.RetrieveBook(context.Background(), RetrieveBookOptions{Slug: &slug})
	require.Error(t, err)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestListBooksDefaultOrderIsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "Old", "9780000000001", "1990-01-01")))
	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "New", "9780000000002", "2020-01-01")))
	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "Middle", "9780000000003", "2005-01-01")))

	got, err := svc.ListBooks(ctx, ListBooksOptions{})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "New", got[0].Title)
	assert.Equal(t, "Middle", got[1].Title)
	assert.Equal(t, "Old", got[2].Title)
}

func TestListBooksOrderingByTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "Banana", "9780000000001", "2020-01-01")))
	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "Apple", "9780000000002", "2021-01-01")))

	ordering := "title"
	got, err := svc.ListBooks(ctx, ListBooksOptions{Ordering: &ordering})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Apple", got[0].Title)
	assert.Equal(t, "Banana", got[1].Title)
}

// Unrecognized ordering fields are ignored in favor of the default order.
// This is deliberate: a bad ordering value degrades gracefully instead of
// failing the request.
func TestListBooksUnknownOrderingFallsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "Old", "9780000000001", "1990-01-01")))
	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "New", "9780000000002", "2020-01-01")))

	ordering := "price; DROP TABLE books"
	got, err := svc.ListBooks(ctx, ListBooksOptions{Ordering: &ordering})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "New", got[0].Title)
}

func TestListBooksSearchMatchesAuthorName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	ursula := createTestAuthor(t, db, "Ursula K. Le Guin")
	octavia := createTestAuthor(t, db, "Octavia E. Butler")

	require.NoError(t, svc.CreateBook(ctx, newTestBook(ursula, "A Wizard of Earthsea", "9780000000001", "1968-11-01")))
	require.NoError(t, svc.CreateBook(ctx, newTestBook(octavia, "Kindred", "9780000000002", "1979-06-01")))

	search := "ursula"
	got, err := svc.ListBooks(ctx, ListBooksOptions{Search: &search})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "A Wizard of Earthsea", got[0].Title)
}

func TestListBooksSearchMatchesTitleCaseInsensitively(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "The Dispossessed", "9780000000001", "1974-05-01")))
	require.NoError(t, svc.CreateBook(ctx, newTestBook(author, "Unrelated", "9780000000002", "1980-01-01")))

	search := "DISPOSSESSED"
	got, err := svc.ListBooks(ctx, ListBooksOptions{Search: &search})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "The Dispossessed", got[0].Title)
}

func TestListBooksGenreFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	fantasy := newTestBook(author, "Fantasy Book", "9780000000001", "2020-01-01")
	fantasy.Genre = "fantasy"
	scifi := newTestBook(author, "Sci-Fi Book", "9780000000002", "2021-01-01")
	scifi.Genre = "sci_fi"
	require.NoError(t, svc.CreateBook(ctx, fantasy))
	require.NoError(t, svc.CreateBook(ctx, scifi))

	genre := "fantasy"
	got, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{Genre: &genre})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Fantasy Book", got[0].Title)
}

func TestListBooksMinRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	low := newTestBook(author, "Low", "9780000000001", "2020-01-01")
	lowRating := 3.9
	low.Rating = &lowRating
	exact := newTestBook(author, "Exact", "9780000000002", "2021-01-01")
	exactRating := 4.0
	exact.Rating = &exactRating
	high := newTestBook(author, "High", "9780000000003", "2022-01-01")
	highRating := 4.7
	high.Rating = &highRating
	unrated := newTestBook(author, "Unrated", "9780000000004", "2023-01-01")
	for _, b := range []*models.Book{low, exact, high, unrated} {
		require.NoError(t, svc.CreateBook(ctx, b))
	}

	minRating := 4.0
	ordering := "-rating"
	got, err := svc.ListBooks(ctx, ListBooksOptions{MinRating: &minRating, Ordering: &ordering})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "High", got[0].Title)
	assert.Equal(t, "Exact", got[1].Title)
}

func TestListBooksWithTotalCountsBeyondPage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	isbns := []string{"9780000000001", "9780000000002", "9780000000003"}
	for i, isbn := range isbns {
		b := newTestBook(author, "Book "+isbn, isbn, "2020-01-01")
		b.Slug = "book-" + string(rune('a'+i))
		require.NoError(t, svc.CreateBook(ctx, b))
	}

	limit := 2
	offset := 0
	got, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{Limit: &limit, Offset: &offset})
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	assert.Len(t, got, 2)
}

func TestUpdateBookDoesNotRegenerateSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	book := newTestBook(author, "Original Title", "9780000000001", "2020-01-01")
	require.NoError(t, svc.CreateBook(ctx, book))
	require.Equal(t, "original-title", book.Slug)

	book.Title = "Renamed Title"
	require.NoError(t, svc.UpdateBook(ctx, book, UpdateBookOptions{Columns: []string{"title"}}))

	got, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Title", got.Title)
	assert.Equal(t, "original-title", got.Slug)
}

func TestUpdateBookDuplicateISBNConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	first := newTestBook(author, "First", "9780000000001", "2020-01-01")
	second := newTestBook(author, "Second", "9780000000002", "2021-01-01")
	require.NoError(t, svc.CreateBook(ctx, first))
	require.NoError(t, svc.CreateBook(ctx, second))

	second.ISBN = first.ISBN
	err := svc.UpdateBook(ctx, second, UpdateBookOptions{Columns: []string{"isbn"}})
	require.Error(t, err)

	appErr := &errcodes.Error{}
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestDeleteBookCascadesReviews(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	book := newTestBook(author, "Reviewed Book", "9780000000001", "2020-01-01")
	require.NoError(t, svc.CreateBook(ctx, book))
	createTestReview(t, db, book.ID, "alice", 5)
	createTestReview(t, db, book.ID, "bob", 3)

	require.NoError(t, svc.DeleteBook(ctx, book))

	remaining, err := db.NewSelect().Model((*models.Review)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestListBookReviewsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()
	author := createTestAuthor(t, db, "Author")

	book := newTestBook(author, "Reviewed Book", "9780000000001", "2020-01-01")
	require.NoError(t, svc.CreateBook(ctx, book))

	older := &models.Review{BookID: book.ID, UserName: "alice", Rating: 4, Comment: "ok", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Review{BookID: book.ID, UserName: "bob", Rating: 5, Comment: "great", CreatedAt: time.Now()}
	_, err := db.NewInsert().Model(older).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(newer).Exec(ctx)
	require.NoError(t, err)

	got, err := svc.ListBookReviews(ctx, book.ID)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].UserName)
	assert.Equal(t, "alice", got[1].UserName)
}

func TestResolveOrdering(t *testing.T) {
	title := "title"
	descRating := "-rating"
	unknown := "isbn"

	assert.Equal(t, DefaultOrdering, resolveOrdering(nil))
	assert.Equal(t, "b.title ASC", resolveOrdering(&title))
	assert.Equal(t, "b.rating DESC", resolveOrdering(&descRating))
	assert.Equal(t, DefaultOrdering, resolveOrdering(&unknown))
}
