package users

import "mime/multipart"

type ProfileRequestPayload struct {
	Username string `json:"username" mod:"trim" validate:"required"`
}

type ProfileResponse struct {
	Username string   `json:"username"`
	Nombre   string   `json:"nombre"`
	Email    string   `json:"email"`
	Centre   *string  `json:"centre"`
	Grup     *string  `json:"grup"`
	Imatge   *string  `json:"imatge"`
	Grupos   []string `json:"grupos"`
	Telefon  *string  `json:"telefon"`
}

type ProfileUpdatePayload struct {
	Username string  `json:"username" mod:"trim" validate:"required"`
	Imatge   *string `json:"imatge,omitempty"`
	Email    *string `json:"email,omitempty" mod:"trim" validate:"omitempty,email"`
	Telefon  *string `json:"telefon,omitempty" mod:"trim" validate:"omitempty,telefon"`
}

type ProfileCheckResponse struct {
	Modified bool `json:"modified"`
}

type SearchUsersPayload struct {
	Query string `json:"query" mod:"trim" validate:"required"`
}

type SearchUserResponse struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Telefon   *string `json:"telefon"`
	Centre    *string `json:"centre"`
}

type UploadDocumentPayload struct {
	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

type CreateUserPayload struct {
	Username    string  `json:"username" mod:"trim" validate:"required,min=1,max=150"`
	Password    string  `json:"password" validate:"required,min=4"`
	FirstName   string  `json:"first_name" mod:"trim" validate:"max=150"`
	LastName    string  `json:"last_name" mod:"trim" validate:"max=150"`
	Email       string  `json:"email" mod:"trim" validate:"required,email"`
	Telefon     *string `json:"telefon,omitempty" mod:"trim" validate:"omitempty,telefon"`
	CentreID    *int    `json:"centre_id,omitempty" validate:"omitempty,min=1"`
	GrupID      *int    `json:"grup_id,omitempty" validate:"omitempty,min=1"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
}

type UpdateUserPayload struct {
	FirstName *string `json:"first_name,omitempty" mod:"trim" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" mod:"trim" validate:"omitempty,max=150"`
	Email     *string `json:"email,omitempty" mod:"trim" validate:"omitempty,email"`
	Telefon   *string `json:"telefon,omitempty" mod:"trim" validate:"omitempty,telefon"`
	CentreID  *int    `json:"centre_id,omitempty" validate:"omitempty,min=1"`
	GrupID    *int    `json:"grup_id,omitempty" validate:"omitempty,min=1"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type ListUsersQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=200"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}
