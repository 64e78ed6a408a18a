package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/domain"
	"github.com/jhoicas/lavadero-api/internal/domain/fiscal"
)

func TestGuard_BloqueaSinInvocarOperacion(t *testing.T) {
	auth := &fiscal.Authorization{Number: "1", ValidUntil: testToday.AddDate(0, 0, -3), Establishment: "001", PointOfSale: "001"}
	called := false

	_, err := billing.Guard(auth, testToday, func(*fiscal.Authorization) (string, error) {
		called = true
		return "ok", nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, errors.Is(err, domain.ErrTimbradoInvalid))
	var te *billing.TimbradoError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, -3, te.Verdict.DaysLeft)
	assert.Contains(t, err.Error(), "vencido hace 3 días")
}

func TestGuard_SinAutorizacion(t *testing.T) {
	_, err := billing.Guard[int](nil, testToday, func(*fiscal.Authorization) (int, error) { return 1, nil })
	var te *billing.TimbradoError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, fiscal.StatusNotConfigured, te.Verdict.Status)
}

func TestGuard_PasaLaAutorizacionALaOperacion(t *testing.T) {
	auth := &fiscal.Authorization{Number: "9876", ValidUntil: testToday.AddDate(0, 0, 10), Establishment: "002", PointOfSale: "003"}

	got, err := billing.Guard(auth, testToday, func(a *fiscal.Authorization) (string, error) {
		return a.Establishment + "-" + a.PointOfSale + "/" + a.Number, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "002-003/9876", got)
}

func TestGuard_PropagaErrorDeLaOperacion(t *testing.T) {
	auth := &fiscal.Authorization{Number: "1", ValidUntil: testToday.AddDate(1, 0, 0), Establishment: "001", PointOfSale: "001"}
	boom := errors.New("boom")
	_, err := billing.Guard(auth, testToday, func(*fiscal.Authorization) (struct{}, error) { return struct{}{}, boom })
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrTimbradoInvalid)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado del timbrado
// ──────────────────────────────────────────────────────────────────────────────

func TestStatus_Vigente(t *testing.T) {
	f := newFixture(t)
	st, err := f.checker.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.IsValid)
	assert.False(t, st.BlocksInvoicing)
	assert.Equal(t, 45, st.DaysLeft)
	assert.Equal(t, "VALID", st.Status)
	assert.Equal(t, "12345678", st.TimbradoNumber)
	assert.Equal(t, "2026-04-24", st.ValidUntil)
	assert.Empty(t, st.Error)
	assert.Empty(t, st.Warning)
}

func TestStatus_PorVencer(t *testing.T) {
	f := newFixture(t)
	f.store.config.TimbradoUntil = testToday.AddDate(0, 0, 30)
	st, err := f.checker.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.IsValid)
	assert.False(t, st.BlocksInvoicing)
	assert.Equal(t, "EXPIRING_SOON", st.Status)
	assert.Equal(t, "el timbrado vence en 30 días", st.Warning)
}

func TestStatus_SinConfiguracion(t *testing.T) {
	f := newFixture(t)
	f.store.config = nil
	st, err := f.checker.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.IsValid)
	assert.True(t, st.BlocksInvoicing)
	assert.Equal(t, "NOT_CONFIGURED", st.Status)
	assert.Empty(t, st.TimbradoNumber)
}

func TestChecker_FechaDelNegocio(t *testing.T) {
	// 01:30 UTC del 11/03 sigue siendo 10/03 en Asunción.
	clock := func() time.Time { return time.Date(2026, time.March, 11, 1, 30, 0, 0, time.UTC) }
	c := billing.NewTimbradoChecker(&configRepo{store: newMemStore()}, clock, pyTZ)
	assert.Equal(t, testToday, c.Today())
}
