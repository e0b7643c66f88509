package postgres

import (
	"context"
	"fmt"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// GetClients retrieves all clients with their preferred caregiver lists.
func (d *DB) GetClients(ctx context.Context) ([]model.Client, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, bus_line_accessible, latitude, longitude
		FROM client
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		var (
			client   model.Client
			lat, lon *float64
		)
		if err := rows.Scan(&client.ID, &client.Name, &client.BusLineAccessible, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		client.Location = location(lat, lon)
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	prefRows, err := d.pool.Query(ctx, `
		SELECT client_id, caregiver_id
		FROM client_preference
		ORDER BY client_id, caregiver_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query client preferences: %w", err)
	}
	defer prefRows.Close()

	preferences := make(map[string][]string)
	for prefRows.Next() {
		var clientID, caregiverID string
		if err := prefRows.Scan(&clientID, &caregiverID); err != nil {
			return nil, fmt.Errorf("failed to scan client preference: %w", err)
		}
		preferences[clientID] = append(preferences[clientID], caregiverID)
	}
	if err := prefRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client preferences: %w", err)
	}

	for i := range clients {
		clients[i].PreferredCaregiverIDs = preferences[clients[i].ID]
	}

	return clients, nil
}
