package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/feeds"
)

// ImportFeedsResult contains the outcome of a feed import
type ImportFeedsResult struct {
	ShiftsImported     int
	ShiftsInserted     int
	CaregiversImported int
	ClientsImported    int
	BadRecords         []feeds.RecordError
}

// ImportFeedsStore defines the database operations needed for feed imports
type ImportFeedsStore interface {
	InsertShifts(ctx context.Context, shifts []model.Shift) (int, error)
	UpsertCaregivers(ctx context.Context, caregivers []model.Caregiver) error
	UpsertClients(ctx context.Context, clients []model.Client) error
}

// ImportFeeds loads agency shift, caregiver and client feeds into the
// database. Any path may be empty to skip that feed. Records that fail
// validation are reported but do not abort the import. Caregivers and
// clients are imported before shifts so that references resolve within
// a single run.
func ImportFeeds(
	ctx context.Context,
	database ImportFeedsStore,
	logger *zap.Logger,
	shiftsPath string,
	caregiversPath string,
	clientsPath string,
) (*ImportFeedsResult, error) {
	if shiftsPath == "" && caregiversPath == "" && clientsPath == "" {
		return nil, fmt.Errorf("at least one feed path is required")
	}

	result := &ImportFeedsResult{}

	if caregiversPath != "" {
		logger.Debug("Importing caregiver feed", zap.String("path", caregiversPath))
		caregivers, bad, err := feeds.ImportCaregivers(caregiversPath)
		if err != nil {
			return nil, err
		}
		result.BadRecords = append(result.BadRecords, bad...)

		if err := database.UpsertCaregivers(ctx, caregivers); err != nil {
			return nil, fmt.Errorf("failed to store caregivers: %w", err)
		}
		result.CaregiversImported = len(caregivers)
		logger.Info("Caregiver feed imported",
			zap.Int("imported", len(caregivers)),
			zap.Int("rejected", len(bad)))
	}

	if clientsPath != "" {
		logger.Debug("Importing client feed", zap.String("path", clientsPath))
		clients, bad, err := feeds.ImportClients(clientsPath)
		if err != nil {
			return nil, err
		}
		result.BadRecords = append(result.BadRecords, bad...)

		if err := database.UpsertClients(ctx, clients); err != nil {
			return nil, fmt.Errorf("failed to store clients: %w", err)
		}
		result.ClientsImported = len(clients)
		logger.Info("Client feed imported",
			zap.Int("imported", len(clients)),
			zap.Int("rejected", len(bad)))
	}

	if shiftsPath != "" {
		logger.Debug("Importing shift feed", zap.String("path", shiftsPath))
		shifts, bad, err := feeds.ImportShifts(shiftsPath)
		if err != nil {
			return nil, err
		}
		result.BadRecords = append(result.BadRecords, bad...)

		inserted, err := database.InsertShifts(ctx, shifts)
		if err != nil {
			return nil, fmt.Errorf("failed to store shifts: %w", err)
		}
		result.ShiftsImported = len(shifts)
		result.ShiftsInserted = inserted
		logger.Info("Shift feed imported",
			zap.Int("imported", len(shifts)),
			zap.Int("inserted", inserted),
			zap.Int("rejected", len(bad)))
	}

	for _, bad := range result.BadRecords {
		logger.Warn("Feed record rejected",
			zap.Int("index", bad.Index),
			zap.String("id", bad.ID),
			zap.String("reason", bad.Reason))
	}

	return result, nil
}
