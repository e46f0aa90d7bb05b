package catalog

import "mime/multipart"

type ListBooksQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=200"`
}

type CreateBookPayload struct {
	Titol     string `json:"titol" mod:"trim" validate:"required,min=1,max=300"`
	Editorial string `json:"editorial" mod:"trim" validate:"required,min=1,max=200"`
}

type CreateBookResponse struct {
	ID    int    `json:"id"`
	Titol string `json:"titol"`
}

type CreateItemPayload struct {
	Tipus         string  `json:"tipus" mod:"trim,lcase" validate:"required,oneof=llibre revista cd dvd br dispositiu indefinit"`
	Titol         string  `json:"titol" mod:"trim" validate:"required,min=1,max=300"`
	TitolOriginal *string `json:"titol_original,omitempty" mod:"trim" validate:"omitempty,max=300"`
	Autor         *string `json:"autor,omitempty" mod:"trim" validate:"omitempty,max=200"`
	Editorial     *string `json:"editorial,omitempty" mod:"trim" validate:"omitempty,max=200"`
	CDU           *string `json:"cdu,omitempty" mod:"trim" validate:"omitempty,max=40"`
	Signatura     *string `json:"signatura,omitempty" mod:"trim" validate:"omitempty,max=40"`
	DataEdicio    *string `json:"data_edicio,omitempty" validate:"omitempty,date"`
	Resum         *string `json:"resum,omitempty"`
	Anotacions    *string `json:"anotacions,omitempty"`
	Mides         *string `json:"mides,omitempty" mod:"trim" validate:"omitempty,max=100"`
	Lloc          *string `json:"lloc,omitempty" mod:"trim" validate:"omitempty,max=200"`
	PaisID        *int    `json:"pais_id,omitempty" validate:"omitempty,min=1"`
	LlenguaID     *int    `json:"llengua_id,omitempty" validate:"omitempty,min=1"`
	TagIDs        []int   `json:"tag_ids,omitempty" validate:"omitempty,dive,min=1"`

	Llibre     *BookPayload     `json:"llibre,omitempty"`
	Revista    *MagazinePayload `json:"revista,omitempty"`
	CD         *DiscPayload     `json:"cd,omitempty"`
	DVD        *DiscPayload     `json:"dvd,omitempty"`
	BR         *DiscPayload     `json:"br,omitempty"`
	Dispositiu *DevicePayload   `json:"dispositiu,omitempty"`
}

type BookPayload struct {
	ISBN         *string `json:"isbn,omitempty" mod:"trim" validate:"omitempty,max=20"`
	Colleccio    *string `json:"colleccio,omitempty" mod:"trim" validate:"omitempty,max=200"`
	Numero       *int    `json:"numero,omitempty"`
	Volums       *int    `json:"volums,omitempty"`
	Pagines      *int    `json:"pagines,omitempty"`
	InfoURL      *string `json:"info_url,omitempty" validate:"omitempty,url"`
	PreviewURL   *string `json:"preview_url,omitempty" validate:"omitempty,url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

type MagazinePayload struct {
	ISSN    *string `json:"issn,omitempty" mod:"trim" validate:"omitempty,max=20"`
	Numero  *int    `json:"numero,omitempty"`
	Volums  *int    `json:"volums,omitempty"`
	Pagines *int    `json:"pagines,omitempty"`
}

type DiscPayload struct {
	Discografica string `json:"discografica,omitempty" mod:"trim" validate:"omitempty,max=200"`
	Productora   string `json:"productora,omitempty" mod:"trim" validate:"omitempty,max=200"`
	Estil        string `json:"estil,omitempty" mod:"trim" validate:"omitempty,max=100"`
	Duracio      string `json:"duracio" mod:"trim" validate:"required,max=20"`
}

type DevicePayload struct {
	Marca string  `json:"marca" mod:"trim" validate:"required,max=100"`
	Model *string `json:"model,omitempty" mod:"trim" validate:"omitempty,max=100"`
}

type UpdateItemPayload struct {
	Titol         *string `json:"titol,omitempty" mod:"trim" validate:"omitempty,min=1,max=300"`
	TitolOriginal *string `json:"titol_original,omitempty" mod:"trim" validate:"omitempty,max=300"`
	Autor         *string `json:"autor,omitempty" mod:"trim" validate:"omitempty,max=200"`
	Editorial     *string `json:"editorial,omitempty" mod:"trim" validate:"omitempty,max=200"`
	CDU           *string `json:"cdu,omitempty" mod:"trim" validate:"omitempty,max=40"`
	Signatura     *string `json:"signatura,omitempty" mod:"trim" validate:"omitempty,max=40"`
	DataEdicio    *string `json:"data_edicio,omitempty" validate:"omitempty,date"`
	Resum         *string `json:"resum,omitempty"`
	Anotacions    *string `json:"anotacions,omitempty"`
	Mides         *string `json:"mides,omitempty" mod:"trim" validate:"omitempty,max=100"`
	Lloc          *string `json:"lloc,omitempty" mod:"trim" validate:"omitempty,max=200"`
	TagIDs        []int   `json:"tag_ids,omitempty" validate:"omitempty,dive,min=1"`
}

type CreateCopyPayload struct {
	CatalegID     int     `json:"cataleg_id" validate:"required,min=1"`
	Registre      *string `json:"registre,omitempty" mod:"trim" validate:"omitempty,max=40"`
	CentreID      int     `json:"centre_id" validate:"required,min=1"`
	ExclosPrestec bool    `json:"exclos_prestec"`
}

type UpdateCopyPayload struct {
	ExclosPrestec *bool `json:"exclos_prestec,omitempty"`
	Baixa         *bool `json:"baixa,omitempty"`
}

type UploadImagePayload struct {
	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}
