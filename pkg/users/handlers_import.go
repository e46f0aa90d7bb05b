package users

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

// uploadDocument accepts a multipart CSV under the "archivo" field and runs
// the bulk user import over it. Row failures are reported in the response,
// only file-level faults produce an error status.
func (h *handler) uploadDocument(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromEchoContext(c)

	params := UploadDocumentPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	header, ok := params.FormFiles["archivo"]
	if !ok {
		return errcodes.ValidationError("archivo is a required field.")
	}

	tmpPath, err := spoolUpload(header)
	if err != nil {
		log.Err(err).Error("failed to spool uploaded csv")
		return internalImportError(c, err)
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		log.Err(err).Error("failed to reopen uploaded csv")
		return internalImportError(c, err)
	}
	defer f.Close()

	result, err := h.userService.ImportCSV(ctx, f)
	if err != nil {
		log.Err(err).Error("failed to process uploaded csv")
		return internalImportError(c, err)
	}

	accio := fmt.Sprintf("Importació CSV: %d usuaris creats, %d errors", result.UsuariosCreados, len(result.Errores))
	if err := h.activityService.Record(ctx, nil, accio, models.LogInfo); err != nil {
		log.Err(err).Error("failed to record import activity")
	}

	return errors.WithStack(c.JSON(http.StatusOK, result))
}

// spoolUpload copies the uploaded part to a temp file and returns its path.
// The caller removes the file when done.
func spoolUpload(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "bibliocat-import-*.csv")
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", errors.WithStack(err)
	}

	return tmp.Name(), nil
}

func internalImportError(c echo.Context, err error) error {
	return errors.WithStack(c.JSON(http.StatusInternalServerError, ImportResult{
		Mensaje: fmt.Sprintf("Error interno del servidor: %v", err),
		Errores: []ImportError{},
	}))
}
