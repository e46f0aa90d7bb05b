package sites

type CreateSitePayload struct {
	Nom string `json:"nom" mod:"trim" validate:"required,min=1,max=200"`
}

type UpdateSitePayload struct {
	Nom string `json:"nom" mod:"trim" validate:"required,min=1,max=200"`
}

type CreateGroupPayload struct {
	Nom string `json:"nom" mod:"trim" validate:"required,min=1,max=100"`
}
