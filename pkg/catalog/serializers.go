package catalog

import "github.com/bibliocat/bibliocat/pkg/models"

// ItemSummary is the flattened catalog representation the public endpoints
// return: author and publisher collapse to their display names, and book
// fields ride along when the item is one. The ISBN key is uppercase for
// compatibility with existing clients.
type ItemSummary struct {
	ID           int     `json:"id"`
	Titol        string  `json:"titol"`
	Autor        *string `json:"autor"`
	ISBN         *string `json:"ISBN,omitempty"`
	Editorial    *string `json:"editorial,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

// CopySummary pairs a copy with its resolved catalog item, kind label, and
// owning site.
type CopySummary struct {
	ID            int         `json:"id"`
	Registre      string      `json:"registre"`
	ExclosPrestec bool        `json:"exclos_prestec"`
	Baixa         bool        `json:"baixa"`
	Cataleg       ItemSummary `json:"cataleg"`
	Tipus         string      `json:"tipus"`
	Centre        SiteRef     `json:"centre"`
}

type SiteRef struct {
	ID  int    `json:"id"`
	Nom string `json:"nom"`
}

// NewItemSummary flattens a loaded catalog item. Book-only fields are left
// out for other kinds.
func NewItemSummary(item *models.CatalogItem) ItemSummary {
	summary := ItemSummary{
		ID:    item.ID,
		Titol: item.Titol,
		Autor: item.AuthorName(),
	}

	if item.Book != nil {
		summary.ISBN = item.Book.ISBN
		summary.Editorial = item.PublisherName()
		summary.ThumbnailURL = item.Book.ThumbnailURL
	}

	return summary
}

// NewCopySummary flattens a loaded copy. The registre falls back to "" and
// the site to a zero ref when the relations are missing.
func NewCopySummary(copyRow *models.Copy) CopySummary {
	summary := CopySummary{
		ID:            copyRow.ID,
		ExclosPrestec: copyRow.ExclosPrestec,
		Baixa:         copyRow.Baixa,
		Tipus:         string(models.KindIndefinit),
	}

	if copyRow.Registre != nil {
		summary.Registre = *copyRow.Registre
	}
	if copyRow.Item != nil {
		summary.Cataleg = NewItemSummary(copyRow.Item)
		summary.Tipus = string(copyRow.Item.Kind())
	}
	if copyRow.Site != nil {
		summary.Centre = SiteRef{ID: copyRow.Site.ID, Nom: copyRow.Site.Nom}
	}

	return summary
}
