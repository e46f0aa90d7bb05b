package catalog

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SaveImage stores an uploaded picture under the media directory and attaches
// it to the catalog item. Only image content is accepted, sniffed from the
// bytes rather than trusting the client's content type.
func (svc *Service) SaveImage(ctx context.Context, itemID int, header *multipart.FileHeader) (*models.Image, error) {
	if _, err := svc.RetrieveItem(ctx, RetrieveItemOptions{ID: &itemID}); err != nil {
		return nil, errors.WithStack(err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, errcodes.UnsupportedMediaType()
	}

	dir := filepath.Join(svc.mediaDir, "imatges")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WithStack(err)
	}

	filename := uuid.New().String() + mtype.Extension()
	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return nil, errors.WithStack(err)
	}

	now := time.Now()
	image := &models.Image{
		CatalogItemID: itemID,
		Filepath:      filepath.Join("imatges", filename),
		MimeType:      mtype.String(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err = svc.db.NewInsert().Model(image).Exec(ctx)
	if err != nil {
		os.Remove(fullPath)
		return nil, errors.WithStack(err)
	}

	return image, nil
}

func (svc *Service) ListImages(ctx context.Context, itemID int) ([]*models.Image, error) {
	images := []*models.Image{}

	err := svc.db.NewSelect().
		Model(&images).
		Where("im.cataleg_id = ?", itemID).
		Order("im.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return images, nil
}

// DeleteImage removes the row and then the file. A missing file is not an
// error, the row is authoritative.
func (svc *Service) DeleteImage(ctx context.Context, id int) error {
	image := &models.Image{}

	err := svc.db.NewSelect().
		Model(image).
		Where("im.id = ?", id).
		Scan(ctx)
	if err != nil {
		return errcodes.NotFound("Imatge")
	}

	_, err = svc.db.NewDelete().
		Model((*models.Image)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	os.Remove(filepath.Join(svc.mediaDir, image.Filepath))
	return nil
}
