package users

import (
	"context"
	"strings"
	"testing"

	"github.com/bibliocat/bibliocat/pkg/auth"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importHeader = "nom,cognom1,cognom2,email,telefon,centre,grup\n"

func TestImportCSV_CreatesUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader + "Anna,Soler,Puig,anna@x.com,600123456,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.UsuariosCreados)
	assert.Empty(t, result.Errores)
	assert.Equal(t, "1 usuario(s) creados correctamente.", result.Mensaje)

	user, err := svc.Retrieve(ctx, RetrieveUserOptions{Username: strPtr("anna@x.com")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)
	assert.Equal(t, "Soler Puig", user.LastName)
	require.NotNil(t, user.Telefon)
	assert.Equal(t, "600123456", *user.Telefon)
	require.NotNil(t, user.Site)
	assert.Equal(t, "IES Test", user.Site.Nom)
	require.NotNil(t, user.Group)
	assert.Equal(t, "GS", user.Group.Nom)
	assert.True(t, user.HasRole(models.RoleUser))
	assert.True(t, auth.CheckPassword(DefaultImportPassword, user.PasswordHash))
}

func TestImportCSV_Reimport_ReportsDuplicate(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader + "Anna,Soler,Puig,anna@x.com,600123456,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, result.UsuariosCreados)

	result, err = svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.UsuariosCreados)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, "El email anna@x.com ya existe.", result.Errores[0].Error)
}

func TestImportCSV_MissingFieldRowCreatesNoUser(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader + "Anna,,Puig,anna@x.com,600123456,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.UsuariosCreados)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, "Faltan campos obligatorios.", result.Errores[0].Error)

	exists, err := svc.Exists(ctx, "anna@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImportCSV_NormalizesEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader +
		"Anna,Soler,Puig,  ANNA @X.COM ,600123456,IES Test,GS\n" +
		"Annabel,Soler,Puig,anna@x.com,600123457,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	// Both rows normalize to the same username, so only the first wins.
	assert.Equal(t, 1, result.UsuariosCreados)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, "El email anna@x.com ya existe.", result.Errores[0].Error)

	user, err := svc.Retrieve(ctx, RetrieveUserOptions{Username: strPtr("anna@x.com")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.FirstName)
}

func TestImportCSV_InvalidEmail(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader + "Anna,Soler,Puig,not-an-email,600123456,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.UsuariosCreados)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, "Email vacío o inválido", result.Errores[0].Error)
}

func TestImportCSV_InvalidPhone(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader +
		"Anna,Soler,Puig,anna@x.com,60012,IES Test,GS\n" +
		"Berta,Soler,Puig,berta@x.com,60012345a,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.UsuariosCreados)
	require.Len(t, result.Errores, 2)
	for _, importErr := range result.Errores {
		assert.Equal(t, "Teléfono inválido. Debe contener al menos 9 dígitos numéricos.", importErr.Error)
	}
}

func TestImportCSV_InvalidName(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader + "Anna3,Soler,Puig,anna@x.com,600123456,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 0, result.UsuariosCreados)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, "Nombre inválido: 'Anna3' contiene caracteres no permitidos.", result.Errores[0].Error)
}

func TestImportCSV_AccentedNamesAllowed(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader + "Núria,Fàbregas,Güell,nuria@x.com,600123456,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.UsuariosCreados)
	assert.Empty(t, result.Errores)
}

func TestImportCSV_SkipsBlankRowsAndContinuesPastErrors(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader +
		",,,,,,\n" +
		"Anna,Soler,Puig,anna@x.com,600123456,IES Test,GS\n" +
		"Bad,Row,Here,,600123456,IES Test,GS\n" +
		"Berta,Mas,Roca,berta@x.com,600123457,IES Test,GM\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.UsuariosCreados)
	require.Len(t, result.Errores, 1)
	assert.Equal(t, "Email vacío o inválido", result.Errores[0].Error)
	assert.Equal(t, "2 usuario(s) creados correctamente.", result.Mensaje)
}

func TestImportCSV_ReusesExistingSiteAndGroup(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	csv := importHeader +
		"Anna,Soler,Puig,anna@x.com,600123456,IES Test,GS\n" +
		"Berta,Mas,Roca,berta@x.com,600123457,IES Test,GS\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 2, result.UsuariosCreados)

	count, err := db.NewSelect().Model((*models.Site)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = db.NewSelect().Model((*models.Group)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImportCSV_EmptyFile(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	result, err := svc.ImportCSV(ctx, strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, 0, result.UsuariosCreados)
	assert.Empty(t, result.Errores)
}
