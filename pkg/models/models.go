package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Author owns zero or more Books. Deleting an author cascades to its books
// at the store level.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Name      string    `bun:",nullzero" json:"name"`
	Biography *string   `json:"biography"`
	BirthDate *string   `json:"birth_date"`
	Website   *string   `json:"website"`
	Books     []*Book   `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher owns zero or more Books. Deleting a publisher clears the
// publisher reference on its books instead of cascading.
type Publisher struct {
	bun.BaseModel `bun:"table:publishers,alias:p"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	Name      string    `bun:",nullzero" json:"name"`
	Website   *string   `json:"website"`
	Address   *string   `json:"address"`
	Books     []*Book   `bun:"rel:has-many,join:id=publisher_id" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Book is addressed by slug in user-facing paths. The slug is derived from
// the title exactly once at creation when the caller doesn't supply one, and
// is never regenerated on update.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            int        `bun:",pk,autoincrement" json:"id"`
	Title         string     `bun:",nullzero" json:"title"`
	Slug          string     `bun:",nullzero" json:"slug"`
	AuthorID      int        `bun:",nullzero" json:"author_id"`
	Author        *Author    `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	PublisherID   *int       `json:"publisher_id"`
	Publisher     *Publisher `bun:"rel:belongs-to,join:publisher_id=id" json:"publisher,omitempty"`
	PublishedDate string     `bun:",nullzero" json:"published_date"`
	ISBN          string     `bun:"isbn,nullzero" json:"isbn"`
	Pages         int        `bun:",nullzero" json:"pages"`
	CoverImage    *string    `json:"cover_image"`
	Language      string     `bun:",nullzero" json:"language"`
	Genre         string     `bun:",nullzero" json:"genre"`
	Description   *string    `json:"description"`
	Price         *float64   `json:"price"`
	Rating        *float64   `json:"rating"`
	Reviews       []*Review  `bun:"rel:has-many,join:id=book_id" json:"reviews,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Review is unique per (book, user_name): one review per named reviewer per
// book, enforced by the store.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	BookID    int       `bun:",nullzero" json:"book_id"`
	Book      *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	UserName  string    `bun:",nullzero" json:"user_name"`
	Rating    int       `bun:",nullzero" json:"rating"`
	Comment   string    `bun:",nullzero" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an authenticated principal. Write operations on the catalog
// require one.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:",pk,autoincrement" json:"id"`
	Username     string    `bun:",nullzero" json:"username"`
	PasswordHash string    `bun:",nullzero" json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
