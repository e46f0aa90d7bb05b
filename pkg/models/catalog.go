package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ItemKind is the discriminator for catalog item specializations. The wire
// values are the Catalan labels the API has always used.
type ItemKind string

const (
	KindLlibre     ItemKind = "llibre"
	KindRevista    ItemKind = "revista"
	KindCD         ItemKind = "cd"
	KindDVD        ItemKind = "dvd"
	KindBR         ItemKind = "br"
	KindDispositiu ItemKind = "dispositiu"
	KindIndefinit  ItemKind = "indefinit"
)

// CatalogItem is the base bibliographic record every kind of media shares.
// Copies, images, and tags attach here, regardless of kind.
type CatalogItem struct {
	bun.BaseModel `bun:"table:cataleg,alias:c"`

	ID            int        `bun:",pk,autoincrement" json:"id"`
	Titol         string     `bun:",nullzero" json:"titol"`
	TitolOriginal *string    `json:"titol_original,omitempty"`
	AuthorID      *int       `bun:"autor_id" json:"autor_id,omitempty"`
	Author        *Author    `bun:"rel:belongs-to,join:autor_id=id" json:"autor,omitempty"`
	CDU           *string    `bun:"cdu" json:"cdu,omitempty"`
	Signatura     *string    `json:"signatura,omitempty"`
	DataEdicio    *time.Time `json:"data_edicio,omitempty"`
	Resum         *string    `json:"resum,omitempty"`
	Anotacions    *string    `json:"anotacions,omitempty"`
	Mides         *string    `json:"mides,omitempty"`
	PublisherID   *int       `bun:"editorial_id" json:"editorial_id,omitempty"`
	Publisher     *Publisher `bun:"rel:belongs-to,join:editorial_id=id" json:"editorial,omitempty"`
	Lloc          *string    `json:"lloc,omitempty"`
	CountryID     *int       `bun:"pais_id" json:"pais_id,omitempty"`
	Country       *Country   `bun:"rel:belongs-to,join:pais_id=id" json:"pais,omitempty"`
	LanguageID    *int       `bun:"llengua_id" json:"llengua_id,omitempty"`
	Language      *Language  `bun:"rel:belongs-to,join:llengua_id=id" json:"llengua,omitempty"`
	Tags          []*Category `bun:"m2m:cataleg_categories,join:Item=Category" json:"tags,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Specialization rows. At most one should exist per item; the first match
	// in kind order wins, with "indefinit" as the fallback.
	Book       *Book       `bun:"rel:has-one,join:id=cataleg_id" json:"-"`
	Magazine   *Magazine   `bun:"rel:has-one,join:id=cataleg_id" json:"-"`
	AudioDisc  *AudioDisc  `bun:"rel:has-one,join:id=cataleg_id" json:"-"`
	VideoDisc  *VideoDisc  `bun:"rel:has-one,join:id=cataleg_id" json:"-"`
	BluRayDisc *BluRayDisc `bun:"rel:has-one,join:id=cataleg_id" json:"-"`
	Device     *Device     `bun:"rel:has-one,join:id=cataleg_id" json:"-"`
}

// Kind reports the specialization of a loaded item. It requires the
// specialization relations to have been selected.
func (c *CatalogItem) Kind() ItemKind {
	switch {
	case c.Book != nil:
		return KindLlibre
	case c.Magazine != nil:
		return KindRevista
	case c.AudioDisc != nil:
		return KindCD
	case c.VideoDisc != nil:
		return KindDVD
	case c.BluRayDisc != nil:
		return KindBR
	case c.Device != nil:
		return KindDispositiu
	default:
		return KindIndefinit
	}
}

// AuthorName resolves the author reference to its display name.
func (c *CatalogItem) AuthorName() *string {
	if c.Author == nil {
		return nil
	}
	return c.Author.Nom
}

// PublisherName resolves the publisher reference to its display name.
func (c *CatalogItem) PublisherName() *string {
	if c.Publisher == nil {
		return nil
	}
	return c.Publisher.Nom
}

type Book struct {
	bun.BaseModel `bun:"table:llibres,alias:ll"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"-"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	ISBN          *string      `bun:"isbn" json:"isbn,omitempty"`
	Colleccio     *string      `json:"colleccio,omitempty"`
	Numero        *int         `json:"numero,omitempty"`
	Volums        *int         `json:"volums,omitempty"`
	Pagines       *int         `json:"pagines,omitempty"`
	InfoURL       *string      `json:"info_url,omitempty"`
	PreviewURL    *string      `json:"preview_url,omitempty"`
	ThumbnailURL  *string      `json:"thumbnail_url,omitempty"`
}

type Magazine struct {
	bun.BaseModel `bun:"table:revistes,alias:rev"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"-"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	ISSN          *string      `bun:"issn" json:"issn,omitempty"`
	Numero        *int         `json:"numero,omitempty"`
	Volums        *int         `json:"volums,omitempty"`
	Pagines       *int         `json:"pagines,omitempty"`
}

// Duracio on the disc kinds is a wall-clock duration in HH:MM:SS form and is
// required.
type AudioDisc struct {
	bun.BaseModel `bun:"table:cds,alias:cd"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"-"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	Discografica  string       `bun:",nullzero" json:"discografica"`
	Estil         string       `bun:",nullzero" json:"estil"`
	Duracio       string       `bun:",nullzero" json:"duracio"`
}

type VideoDisc struct {
	bun.BaseModel `bun:"table:dvds,alias:dvd"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"-"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	Productora    string       `bun:",nullzero" json:"productora"`
	Duracio       string       `bun:",nullzero" json:"duracio"`
}

type BluRayDisc struct {
	bun.BaseModel `bun:"table:brs,alias:br"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"-"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	Productora    string       `bun:",nullzero" json:"productora"`
	Duracio       string       `bun:",nullzero" json:"duracio"`
}

type Device struct {
	bun.BaseModel `bun:"table:dispositius,alias:disp"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"-"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	Marca         string       `bun:",nullzero" json:"marca"`
	Model         *string      `json:"model,omitempty"`
}

// CatalogItemCategory is the m2m join between catalog items and categories.
type CatalogItemCategory struct {
	bun.BaseModel `bun:"table:cataleg_categories,alias:cc"`

	CatalogItemID int          `bun:"cataleg_id,pk" json:"cataleg_id"`
	Item          *CatalogItem `bun:"rel:belongs-to,join:cataleg_id=id" json:"-"`
	CategoryID    int          `bun:"categoria_id,pk" json:"categoria_id"`
	Category      *Category    `bun:"rel:belongs-to,join:categoria_id=id" json:"-"`
}
