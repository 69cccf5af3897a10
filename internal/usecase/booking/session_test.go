package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

func uintPtr(v uint) *uint { return &v }

func TestWizardSessionsWalkThrough(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	uc := NewWizardSessions(store, seedCatalog(), nil, testTZ)

	w, err := uc.Start(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StepService, w.Step)

	_, moved, err := uc.Next(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, moved, "cannot leave step 1 without a service")

	w, err = uc.Update(ctx, w.ID, UpdateInput{ServiceID: uintPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Full Color", w.Data.Service.Name)
	assert.Equal(t, 180, w.Data.Service.DurationMin)

	_, moved, err = uc.Next(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	w, err = uc.Update(ctx, w.ID, UpdateInput{AnyStaff: true})
	require.NoError(t, err)
	assert.True(t, w.Data.Staff.Any)
	assert.Equal(t, "Full Color", w.Data.Service.Name, "earlier answers are kept")

	w, err = uc.Update(ctx, w.ID, UpdateInput{Date: "2026-03-14", Time: "10:30"})
	require.NoError(t, err)
	assert.Equal(t, "Saturday, March 14, 2026 at 10:30 AM", w.Data.DateTime.Formatted)

	view := NewSessionView(w)
	assert.Equal(t, "13:30", view.EndTime)
	assert.Equal(t, 40, view.Progress)

	w, moved, err = uc.Prev(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, domain.StepService, w.Step)
}

func TestWizardSessionsRejectsUnknownSelections(t *testing.T) {
	ctx := context.Background()
	uc := NewWizardSessions(newMemoryStore(), seedCatalog(), nil, testTZ)
	w, err := uc.Start(ctx, uintPtr(5))
	require.NoError(t, err)

	_, err = uc.Update(ctx, w.ID, UpdateInput{ServiceID: uintPtr(3)})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"), "inactive service")

	_, err = uc.Update(ctx, w.ID, UpdateInput{StaffID: uintPtr(4)})
	assert.True(t, httperr.IsBusiness(err, "staff_not_found"), "inactive stylist")

	_, err = uc.Update(ctx, w.ID, UpdateInput{Date: "2026-03-14"})
	assert.True(t, httperr.IsBusiness(err, "invalid_datetime"))

	_, err = uc.Update(ctx, w.ID, UpdateInput{Date: "2026-02-30", Time: "10:00"})
	assert.True(t, httperr.IsBusiness(err, "invalid_datetime"))

	_, err = uc.Get(ctx, "nope")
	assert.True(t, httperr.IsBusiness(err, "session_not_found"))
}

func TestWizardSessionsFrozenAfterConfirm(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	readySession(store, "done")
	w, _ := store.Load(ctx, "done")
	w.Confirmed = true
	require.NoError(t, store.Save(ctx, w))

	uc := NewWizardSessions(store, seedCatalog(), nil, testTZ)

	_, err := uc.Update(ctx, "done", UpdateInput{AnyStaff: true})
	assert.True(t, httperr.IsBusiness(err, "already_confirmed"))

	w, moved, err := uc.Prev(ctx, "done")
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, domain.StepConfirmation, w.Step)
}
