package books

// ListBooksQuery are the collection endpoint parameters. Search matches
// case-insensitively against title, author name, and isbn; the field filters
// are exact matches AND-combined with it. Ordering accepts title,
// published_date, or rating, optionally prefixed with "-" for descending;
// anything else falls back to the default order.
type ListBooksQuery struct {
	Page          int     `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	Search        *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
	Language      *string `query:"language" json:"language,omitempty"`
	Genre         *string `query:"genre" json:"genre,omitempty"`
	PublishedDate *string `query:"published_date" json:"published_date,omitempty" validate:"omitempty,date"`
	Ordering      *string `query:"ordering" json:"ordering,omitempty"`
}

// PageQuery is for the derived collection views, which only paginate.
type PageQuery struct {
	Page int `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
}

// CreateBookPayload is the write contract for create and full update.
// Required fields: title, author_id, published_date, isbn, pages. The slug
// is honored only at creation; updates never regenerate it.
type CreateBookPayload struct {
	Title         string   `json:"title" validate:"required,max=200"`
	Slug          *string  `json:"slug,omitempty" validate:"omitempty,max=250"`
	AuthorID      int      `json:"author_id" validate:"required,min=1"`
	PublisherID   *int     `json:"publisher_id,omitempty" validate:"omitempty,min=1"`
	PublishedDate string   `json:"published_date" validate:"required,date"`
	ISBN          string   `json:"isbn" validate:"required,len=13"`
	Pages         int      `json:"pages" validate:"required,min=1"`
	CoverImage    *string  `json:"cover_image,omitempty" validate:"omitempty,url"`
	Language      string   `json:"language,omitempty" default:"en" validate:"omitempty,oneof=en es fr de it pt zh ja ru"`
	Genre         string   `json:"genre,omitempty" default:"fiction" validate:"omitempty,oneof=fiction non_fiction sci_fi fantasy mystery thriller romance biography history self_help other"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
}

// UpdateBookPayload is the partial-update contract: every field optional,
// only provided fields are written.
type UpdateBookPayload struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,max=200"`
	AuthorID      *int     `json:"author_id,omitempty" validate:"omitempty,min=1"`
	PublisherID   *int     `json:"publisher_id,omitempty" validate:"omitempty,min=1"`
	PublishedDate *string  `json:"published_date,omitempty" validate:"omitempty,date"`
	ISBN          *string  `json:"isbn,omitempty" validate:"omitempty,len=13"`
	Pages         *int     `json:"pages,omitempty" validate:"omitempty,min=1"`
	CoverImage    *string  `json:"cover_image,omitempty" validate:"omitempty,url"`
	Language      *string  `json:"language,omitempty" validate:"omitempty,oneof=en es fr de it pt zh ja ru"`
	Genre         *string  `json:"genre,omitempty" validate:"omitempty,oneof=fiction non_fiction sci_fi fantasy mystery thriller romance biography history self_help other"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Rating        *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
}
