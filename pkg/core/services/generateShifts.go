package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/internal/config"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

// GenerateShiftsResult contains the outcome of a shift generation run
type GenerateShiftsResult struct {
	From      string
	To        string
	Generated int
	Inserted  int
}

// GenerateShiftsStore defines the database operations needed for generating shifts
type GenerateShiftsStore interface {
	InsertShifts(ctx context.Context, shifts []model.Shift) (int, error)
}

// GenerateShifts expands the configured recurring visit templates into
// unassigned shifts covering the given number of weeks from today.
// Shift ids are derived from the client, date and start time, so
// re-running generation over an overlapping window inserts nothing twice.
func GenerateShifts(
	ctx context.Context,
	database GenerateShiftsStore,
	cfg *config.Config,
	logger *zap.Logger,
	weeks int,
) (*GenerateShiftsResult, error) {
	logger.Debug("Starting shift generation", zap.Int("weeks", weeks))

	if weeks < 1 {
		return nil, fmt.Errorf("weeks must be at least 1, got %d", weeks)
	}
	if len(cfg.VisitTemplates) == 0 {
		return nil, fmt.Errorf("no visit templates configured")
	}

	from, to := planningWindow(time.Now(), weeks)
	shifts, err := expandTemplates(cfg.VisitTemplates, from, to)
	if err != nil {
		return nil, err
	}
	logger.Debug("Expanded visit templates",
		zap.Int("templates", len(cfg.VisitTemplates)),
		zap.Int("shifts", len(shifts)))

	inserted, err := database.InsertShifts(ctx, shifts)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shifts: %w", err)
	}

	logger.Info("Shift generation completed",
		zap.Int("generated", len(shifts)),
		zap.Int("inserted", inserted))

	return &GenerateShiftsResult{
		From:      from,
		To:        to,
		Generated: len(shifts),
		Inserted:  inserted,
	}, nil
}

// expandTemplates turns each template's rrule into concrete dated shifts
// within [from, to]
func expandTemplates(templates []config.VisitTemplate, from, to string) ([]model.Shift, error) {
	fromDate, err := timewindow.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", from, err)
	}
	toDate, err := timewindow.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", to, err)
	}

	var shifts []model.Shift
	for i, template := range templates {
		window, err := timewindow.Parse(template.StartTime, template.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid time window in visitTemplates[%d]: %w", i, err)
		}

		rule, err := rrule.StrToRRule(template.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule in visitTemplates[%d]: %w", i, err)
		}
		rule.DTStart(fromDate)

		for _, occurrence := range rule.Between(fromDate, toDate, true) {
			date := occurrence.Format(timewindow.DateLayout)
			shifts = append(shifts, model.Shift{
				ID:             visitShiftID(template.ClientID, date, template.StartTime),
				ClientID:       template.ClientID,
				Date:           date,
				StartTime:      template.StartTime,
				EndTime:        template.EndTime,
				DurationHours:  window.Hours(),
				RequiredSkills: template.RequiredSkills,
				Status:         model.ShiftUnassigned,
			})
		}
	}

	return shifts, nil
}

func visitShiftID(clientID, date, startTime string) string {
	return fmt.Sprintf("visit-%s-%s-%s", clientID, date, strings.ReplaceAll(startTime, ":", ""))
}
