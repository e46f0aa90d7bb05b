package refdata

type CreateCategoryPayload struct {
	Nom      string `json:"nom" mod:"trim" validate:"required,min=1,max=200"`
	ParentID *int   `json:"parent_id,omitempty" validate:"omitempty,min=1"`
}

type UpdateCategoryPayload struct {
	Nom         *string `json:"nom,omitempty" mod:"trim" validate:"omitempty,min=1,max=200"`
	ParentID    *int    `json:"parent_id,omitempty" validate:"omitempty,min=1"`
	ClearParent bool    `json:"clear_parent"`
}

type CreateNamePayload struct {
	Nom string `json:"nom" mod:"trim" validate:"required,min=1,max=200"`
}
