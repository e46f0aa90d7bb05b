package loans

type LoanHistoryPayload struct {
	Username string `json:"username" mod:"trim" validate:"required"`
}

// LoanHistoryEntry is the flattened loan the history endpoint returns. The
// copy's title rides along, "N/A" when the chain is broken.
type LoanHistoryEntry struct {
	ID            int     `json:"id"`
	DataPrestec   string  `json:"data_prestec"`
	DataRetorn    *string `json:"data_retorn"`
	Anotacions    *string `json:"anotacions"`
	ExemplarTitol string  `json:"exemplar_titol"`
}

type CreateLoanPayload struct {
	Usuari      int     `json:"usuari" validate:"required,min=1"`
	Exemplar    int     `json:"exemplar" validate:"required,min=1"`
	DataPrestec *string `json:"data_prestec,omitempty" validate:"omitempty,date"`
	Anotacions  *string `json:"anotacions,omitempty"`
}

type CreateLoanResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type ReturnLoanPayload struct {
	DataRetorn *string `json:"data_retorn,omitempty" validate:"omitempty,date"`
}
