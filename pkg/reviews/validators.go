package reviews

// ListReviewsQuery filters the flat review collection by book and rating.
type ListReviewsQuery struct {
	Page   int  `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	BookID *int `query:"book_id" json:"book_id,omitempty" validate:"omitempty,min=1"`
	Rating *int `query:"rating" json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type CreateReviewPayload struct {
	BookID   int    `json:"book_id" validate:"required,min=1"`
	UserName string `json:"user_name" validate:"required,max=100"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required"`
}

// UpdateReviewPayload edits the review content. The book and reviewer
// identity are fixed at creation.
type UpdateReviewPayload struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}
