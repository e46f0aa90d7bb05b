package users

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/bibliocat/bibliocat/pkg/sites"
	"github.com/pkg/errors"
)

// DefaultImportPassword is assigned to every account created through the
// bulk import. Users are expected to change it on first login.
const DefaultImportPassword = "1234"

// ImportError records one rejected row together with the reason.
type ImportError struct {
	Fila  map[string]string `json:"fila"`
	Error string            `json:"error"`
}

// ImportResult is the outcome of a whole bulk import run. Row failures never
// abort the batch, they accumulate in Errores.
type ImportResult struct {
	Mensaje         string        `json:"mensaje"`
	UsuariosCreados int           `json:"usuarios_creados"`
	Errores         []ImportError `json:"errores"`
}

// ImportCSV reads a CSV with columns nom, cognom1, cognom2, email, telefon,
// centre, grup and creates one user per valid row. Each row succeeds or fails
// independently.
func (svc *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &ImportResult{
				Mensaje: "0 usuario(s) creados correctamente.",
				Errores: []ImportError{},
			}, nil
		}
		return nil, errors.WithStack(err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	siteService := sites.NewService(svc.db)
	result := &ImportResult{Errores: []ImportError{}}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		row := map[string]string{}
		blank := true
		for i, key := range header {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row[key] = value
			if value != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		email := strings.ToLower(strings.ReplaceAll(row["email"], " ", ""))
		if email == "" || !strings.Contains(email, "@") {
			result.Errores = append(result.Errores, ImportError{row, "Email vacío o inválido"})
			continue
		}

		exists, err := svc.Exists(ctx, email)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if exists {
			result.Errores = append(result.Errores, ImportError{row, fmt.Sprintf("El email %s ya existe.", email)})
			continue
		}

		nom := row["nom"]
		cognom1 := row["cognom1"]
		cognom2 := row["cognom2"]
		telefon := row["telefon"]
		centreNom := row["centre"]
		grupNom := row["grup"]

		if nom == "" || cognom1 == "" || cognom2 == "" || telefon == "" || centreNom == "" || grupNom == "" {
			result.Errores = append(result.Errores, ImportError{row, "Faltan campos obligatorios."})
			continue
		}

		if msg := validateImportRow(nom, cognom1, cognom2, telefon); msg != "" {
			result.Errores = append(result.Errores, ImportError{row, msg})
			continue
		}

		centre, err := siteService.GetOrCreateSite(ctx, centreNom)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		grup, err := siteService.GetOrCreateGroup(ctx, grupNom)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		_, err = svc.Create(ctx, CreateUserOptions{
			Username:  email,
			Password:  DefaultImportPassword,
			FirstName: nom,
			LastName:  cognom1 + " " + cognom2,
			Email:     email,
			Telefon:   &telefon,
			SiteID:    &centre.ID,
			GroupID:   &grup.ID,
		})
		if err != nil {
			result.Errores = append(result.Errores, ImportError{row, err.Error()})
			continue
		}

		result.UsuariosCreados++
	}

	result.Mensaje = fmt.Sprintf("%d usuario(s) creados correctamente.", result.UsuariosCreados)
	return result, nil
}

func validateImportRow(nom, cognom1, cognom2, telefon string) string {
	for _, name := range []string{nom, cognom1, cognom2} {
		if name == "" {
			continue
		}
		if !isAlphabetic(name) {
			return fmt.Sprintf("Nombre inválido: '%s' contiene caracteres no permitidos.", name)
		}
	}

	if !isNumeric(telefon) || len(telefon) < 9 {
		return "Teléfono inválido. Debe contener al menos 9 dígitos numéricos."
	}

	return ""
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
