package publishers

type ListPublishersQuery struct {
	Page   int     `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreatePublisherPayload struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`
	Address *string `json:"address,omitempty"`
}

type UpdatePublisherPayload struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Website *string `json:"website,omitempty" validate:"omitempty,url"`
	Address *string `json:"address,omitempty"`
}
