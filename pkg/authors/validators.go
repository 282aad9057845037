package authors

// ListAuthorsQuery supports pagination plus a case-insensitive name search.
type ListAuthorsQuery struct {
	Page   int     `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreateAuthorPayload struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Biography *string `json:"biography,omitempty"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,date"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url"`
}

type UpdateAuthorPayload struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Biography *string `json:"biography,omitempty"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,date"`
	Website   *string `json:"website,omitempty" validate:"omitempty,url"`
}
