package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// mockImportStore implements ImportFeedsStore for testing
type mockImportStore struct {
	shifts     []model.Shift
	caregivers []model.Caregiver
	clients    []model.Client
}

func (m *mockImportStore) InsertShifts(ctx context.Context, shifts []model.Shift) (int, error) {
	m.shifts = append(m.shifts, shifts...)
	return len(shifts), nil
}

func (m *mockImportStore) UpsertCaregivers(ctx context.Context, caregivers []model.Caregiver) error {
	m.caregivers = append(m.caregivers, caregivers...)
	return nil
}

func (m *mockImportStore) UpsertClients(ctx context.Context, clients []model.Client) error {
	m.clients = append(m.clients, clients...)
	return nil
}

func TestImportFeeds(t *testing.T) {
	dir := t.TempDir()
	shiftsPath := filepath.Join(dir, "shifts.json")
	caregiversPath := filepath.Join(dir, "caregivers.json")
	require.NoError(t, os.WriteFile(shiftsPath, []byte(`[
		{"id": "shift-1", "clientId": "client-1", "date": "2026-09-07", "startTime": "09:00", "endTime": "12:00"},
		{"id": "shift-bad", "clientId": "client-1", "date": "soon", "startTime": "09:00", "endTime": "12:00"}
	]`), 0o600))
	require.NoError(t, os.WriteFile(caregiversPath, []byte(`[
		{"id": "cg-1", "name": "Priya N"}
	]`), 0o600))

	store := &mockImportStore{}
	result, err := ImportFeeds(context.Background(), store, zap.NewNop(), shiftsPath, caregiversPath, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ShiftsImported)
	assert.Equal(t, 1, result.ShiftsInserted)
	assert.Equal(t, 1, result.CaregiversImported)
	require.Len(t, result.BadRecords, 1)
	assert.Equal(t, "shift-bad", result.BadRecords[0].ID)

	require.Len(t, store.shifts, 1)
	require.Len(t, store.caregivers, 1)
}

func TestImportFeedsRequiresAPath(t *testing.T) {
	_, err := ImportFeeds(context.Background(), &mockImportStore{}, zap.NewNop(), "", "", "")
	require.Error(t, err)
}

func TestImportFeedsShiftsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "shift-1", "clientId": "client-1", "date": "2026-09-07", "startTime": "09:00", "endTime": "12:00"}
	]`), 0o600))

	store := &mockImportStore{}
	result, err := ImportFeeds(context.Background(), store, zap.NewNop(), path, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ShiftsImported)
	assert.Equal(t, 0, result.CaregiversImported)
	assert.Empty(t, store.caregivers)
}

func TestImportFeedsClients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "client-1", "name": "Edith M", "busLineAccessible": true,
		 "latitude": 41.5, "longitude": -72.7,
		 "preferredCaregiverIds": ["cg-1", "cg-2"]},
		{"id": "client-bad"}
	]`), 0o600))

	store := &mockImportStore{}
	result, err := ImportFeeds(context.Background(), store, zap.NewNop(), "", "", path)
	require.NoError(t, err)

	assert.Equal(t, 1, result.ClientsImported)
	require.Len(t, result.BadRecords, 1)
	assert.Equal(t, "client-bad", result.BadRecords[0].ID)

	require.Len(t, store.clients, 1)
	client := store.clients[0]
	assert.Equal(t, "Edith M", client.Name)
	assert.True(t, client.BusLineAccessible)
	require.NotNil(t, client.Location)
	assert.Equal(t, []string{"cg-1", "cg-2"}, client.PreferredCaregiverIDs)
}
