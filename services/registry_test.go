package services

import (
	"context"
	"testing"

	"github.com/sistemapracticas/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccounts(t *testing.T, svc *RegistryService) {
	t.Helper()
	db := svc.db

	mustCreate(t, db, &model.Alumno{
		NumControl: "S100", Nombre: "Ana",
		Correo: "ana@alumnos.edu.mx", NumCelular: "5550001111",
	})
	mustCreate(t, db, &model.EntidadReceptora{
		EntidadID: 3, NombreEntidad: "Tecnorte",
		Correo: "rh@tecnorte.mx", NumCelular: "5550002222",
	})
	mustCreate(t, db, &model.AsesorInterno{
		AsesorInternoID: 1, Nombre: "Laura",
		Correo: "laura@instituto.edu.mx", NumCelular: "5550003333",
	})
	mustCreate(t, db, &model.Administrador{
		AdminID: 9, Nombre: "Admin",
		Correo: "admin@instituto.edu.mx", NumCelular: "5550004444",
	})
}

func TestEmailInUseAcrossTables(t *testing.T) {
	svc := NewRegistryService(newTestDB(t))
	seedAccounts(t, svc)
	ctx := context.Background()

	// Hits in different account tables all count.
	for _, correo := range []string{
		"ana@alumnos.edu.mx",
		"rh@tecnorte.mx",
		"laura@instituto.edu.mx",
		"admin@instituto.edu.mx",
	} {
		taken, err := svc.EmailInUse(ctx, correo)
		require.NoError(t, err)
		assert.True(t, taken, correo)
	}

	taken, err := svc.EmailInUse(ctx, "nadie@instituto.edu.mx")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPhoneInUseAcrossTables(t *testing.T) {
	svc := NewRegistryService(newTestDB(t))
	seedAccounts(t, svc)
	ctx := context.Background()

	taken, err := svc.PhoneInUse(ctx, "5550002222")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.PhoneInUse(ctx, "5559999999")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEmailInUseExcludingSelf(t *testing.T) {
	svc := NewRegistryService(newTestDB(t))
	seedAccounts(t, svc)
	ctx := context.Background()

	// The student editing their own profile does not collide with themselves.
	taken, err := svc.EmailInUseExcluding(ctx, "ana@alumnos.edu.mx", "S100")
	require.NoError(t, err)
	assert.False(t, taken)

	// But a different account still does.
	taken, err = svc.EmailInUseExcluding(ctx, "ana@alumnos.edu.mx", "S999")
	require.NoError(t, err)
	assert.True(t, taken)

	// Exclusion also works for numeric-keyed tables.
	taken, err = svc.EmailInUseExcluding(ctx, "rh@tecnorte.mx", "3")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestContactInUseEmptyValue(t *testing.T) {
	svc := NewRegistryService(newTestDB(t))
	seedAccounts(t, svc)

	// Blank contact fields never count as taken.
	taken, err := svc.EmailInUse(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, taken)
}
