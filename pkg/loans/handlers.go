package loans

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bibliocat/bibliocat/pkg/activity"
	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

const dateLayout = "2006-01-02"

type handler struct {
	loanService     *Service
	activityService *activity.Service
}

// history lists a user's loans newest-first. The username travels in the
// body for compatibility with existing clients.
func (h *handler) history(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoanHistoryPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	loans, err := h.loanService.List(ctx, ListLoansOptions{Username: &params.Username})
	if err != nil {
		return errors.WithStack(err)
	}

	response := make([]LoanHistoryEntry, 0, len(loans))
	for _, loan := range loans {
		entry := LoanHistoryEntry{
			ID:            loan.ID,
			DataPrestec:   loan.DataPrestec.Format(dateLayout),
			Anotacions:    loan.Anotacions,
			ExemplarTitol: "N/A",
		}
		if loan.DataRetorn != nil {
			formatted := loan.DataRetorn.Format(dateLayout)
			entry.DataRetorn = &formatted
		}
		if loan.Copy != nil && loan.Copy.Item != nil {
			entry.ExemplarTitol = loan.Copy.Item.Titol
		}
		response = append(response, entry)
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// create books a copy out to a user.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromEchoContext(c)

	params := CreateLoanPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := CreateLoanOptions{
		UserID:     params.Usuari,
		CopyID:     params.Exemplar,
		Anotacions: params.Anotacions,
	}

	if params.DataPrestec != nil && *params.DataPrestec != "" {
		parsed, err := time.Parse(dateLayout, *params.DataPrestec)
		if err != nil {
			return errcodes.ValidationError("data_prestec must be formatted as YYYY-MM-DD.")
		}
		opts.DataPrestec = &parsed
	}

	loan, err := h.loanService.Create(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	accio := fmt.Sprintf("Préstec %d creat per a l'usuari %d sobre l'exemplar %d", loan.ID, loan.UserID, loan.CopyID)
	var usuari *string
	if loan.User != nil {
		usuari = &loan.User.Username
	}
	if err := h.activityService.Record(ctx, usuari, accio, models.LogInfo); err != nil {
		log.Err(err).Error("failed to record loan activity")
	}

	return errors.WithStack(c.JSON(http.StatusOK, CreateLoanResponse{
		Message: "Préstamo creado correctamente",
		ID:      loan.ID,
	}))
}

// returnLoan closes a loan and frees its copy.
func (h *handler) returnLoan(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Prestec")
	}

	params := ReturnLoanPayload{}
	if err := c.Bind(&params); err != nil && !errors.Is(err, errcodes.EmptyRequestBody()) {
		return errors.WithStack(err)
	}

	var dataRetorn *time.Time
	if params.DataRetorn != nil && *params.DataRetorn != "" {
		parsed, err := time.Parse(dateLayout, *params.DataRetorn)
		if err != nil {
			return errcodes.ValidationError("data_retorn must be formatted as YYYY-MM-DD.")
		}
		dataRetorn = &parsed
	}

	loan, err := h.loanService.Return(ctx, id, dataRetorn)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, loan))
}
