package feeds

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
	"github.com/brightpath-care/shiftmatch/pkg/core/timewindow"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ShiftRecord is a single shift entry in an agency shift feed
type ShiftRecord struct {
	ID             string   `json:"id" validate:"required"`
	ClientID       string   `json:"clientId" validate:"required"`
	Date           string   `json:"date" validate:"required"`
	StartTime      string   `json:"startTime" validate:"required"`
	EndTime        string   `json:"endTime" validate:"required"`
	DurationHours  float64  `json:"durationHours" validate:"omitempty,gt=0"`
	RequiredSkills []string `json:"requiredSkills,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

// ClientRecord is a single client entry in an agency client feed
type ClientRecord struct {
	ID                    string   `json:"id" validate:"required"`
	Name                  string   `json:"name" validate:"required"`
	BusLineAccessible     bool     `json:"busLineAccessible"`
	Latitude              *float64 `json:"latitude,omitempty"`
	Longitude             *float64 `json:"longitude,omitempty"`
	PreferredCaregiverIDs []string `json:"preferredCaregiverIds,omitempty"`
}

// CaregiverRecord is a single caregiver entry in an agency caregiver feed
type CaregiverRecord struct {
	ID                string               `json:"id" validate:"required"`
	Name              string               `json:"name" validate:"required"`
	Skills            []string             `json:"skills,omitempty"`
	DrivesCar         bool                 `json:"drivesCar"`
	MaxDaysPerWeek    int                  `json:"maxDaysPerWeek" validate:"min=0,max=7"`
	MaxHoursPerWeek   float64              `json:"maxHoursPerWeek" validate:"min=0"`
	TargetWeeklyHours float64              `json:"targetWeeklyHours" validate:"min=0"`
	Latitude          *float64             `json:"latitude,omitempty"`
	Longitude         *float64             `json:"longitude,omitempty"`
	GeneralRules      []GeneralRuleRecord  `json:"generalRules,omitempty" validate:"dive"`
	SpecificSlots     []SpecificSlotRecord `json:"specificSlots,omitempty" validate:"dive"`
	TimeOff           []TimeOffRecord      `json:"timeOff,omitempty" validate:"dive"`
}

// GeneralRuleRecord is a recurring weekly availability window in a feed
type GeneralRuleRecord struct {
	DaysOfWeek     []int             `json:"daysOfWeek" validate:"required,min=1,dive,min=0,max=6"`
	StartTime      string            `json:"startTime" validate:"required"`
	EndTime        string            `json:"endTime" validate:"required"`
	EffectiveFrom  string            `json:"effectiveFrom,omitempty"`
	EffectiveUntil string            `json:"effectiveUntil,omitempty"`
	Exceptions     []ExceptionRecord `json:"exceptions,omitempty" validate:"dive"`
}

// ExceptionRecord carves a date out of a general rule, either for the
// whole day or for a window within it
type ExceptionRecord struct {
	Date      string `json:"date" validate:"required"`
	FullDay   bool   `json:"fullDay"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// SpecificSlotRecord is a one-off availability window on a single date
type SpecificSlotRecord struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// TimeOffRecord is a blocked date range in a feed
type TimeOffRecord struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// RecordError pairs a rejected feed record with the reason it was rejected
type RecordError struct {
	Index  int
	ID     string
	Reason string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %s", e.Index, e.ID, e.Reason)
}

// ImportShifts reads a JSON shift feed from path. Records that fail
// validation are collected and returned alongside the good ones so a
// partially bad feed still imports.
func ImportShifts(path string) ([]model.Shift, []RecordError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read shift feed: %w", err)
	}

	var records []ShiftRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to parse shift feed: %w", err)
	}

	var (
		shifts  []model.Shift
		errored []RecordError
	)
	for i, record := range records {
		if reason := validateShift(record); reason != "" {
			errored = append(errored, RecordError{Index: i, ID: record.ID, Reason: reason})
			continue
		}

		duration := record.DurationHours
		if duration == 0 {
			window, _ := timewindow.Parse(record.StartTime, record.EndTime)
			duration = window.Hours()
		}

		shifts = append(shifts, model.Shift{
			ID:             record.ID,
			ClientID:       record.ClientID,
			Date:           record.Date,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			DurationHours:  duration,
			RequiredSkills: record.RequiredSkills,
			Location:       location(record.Latitude, record.Longitude),
			Status:         model.ShiftUnassigned,
		})
	}

	return shifts, errored, nil
}

// ImportCaregivers reads a JSON caregiver feed from path, collecting
// invalid records rather than failing the whole import.
func ImportCaregivers(path string) ([]model.Caregiver, []RecordError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read caregiver feed: %w", err)
	}

	var records []CaregiverRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to parse caregiver feed: %w", err)
	}

	var (
		caregivers []model.Caregiver
		errored    []RecordError
	)
	for i, record := range records {
		if reason := validateCaregiver(record); reason != "" {
			errored = append(errored, RecordError{Index: i, ID: record.ID, Reason: reason})
			continue
		}

		caregiver := model.Caregiver{
			ID:                record.ID,
			Name:              record.Name,
			Skills:            record.Skills,
			DrivesCar:         record.DrivesCar,
			MaxDaysPerWeek:    record.MaxDaysPerWeek,
			MaxHoursPerWeek:   record.MaxHoursPerWeek,
			TargetWeeklyHours: record.TargetWeeklyHours,
			Location:          location(record.Latitude, record.Longitude),
		}

		for _, rule := range record.GeneralRules {
			days := make([]time.Weekday, 0, len(rule.DaysOfWeek))
			for _, day := range rule.DaysOfWeek {
				days = append(days, time.Weekday(day))
			}
			var exceptions []model.RuleException
			for _, exc := range rule.Exceptions {
				exceptions = append(exceptions, model.RuleException{
					Date:      exc.Date,
					FullDay:   exc.FullDay,
					StartTime: exc.StartTime,
					EndTime:   exc.EndTime,
				})
			}
			caregiver.Availability.GeneralRules = append(caregiver.Availability.GeneralRules, model.GeneralRule{
				DaysOfWeek:     days,
				StartTime:      rule.StartTime,
				EndTime:        rule.EndTime,
				EffectiveFrom:  rule.EffectiveFrom,
				EffectiveUntil: rule.EffectiveUntil,
				Exceptions:     exceptions,
			})
		}

		for _, slot := range record.SpecificSlots {
			caregiver.Availability.SpecificSlots = append(caregiver.Availability.SpecificSlots, model.SpecificSlot{
				Date:      slot.Date,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}

		for _, off := range record.TimeOff {
			caregiver.Availability.TimeOff = append(caregiver.Availability.TimeOff, model.TimeOff{
				StartDate: off.StartDate,
				EndDate:   off.EndDate,
				Reason:    off.Reason,
			})
		}

		caregivers = append(caregivers, caregiver)
	}

	return caregivers, errored, nil
}

// ImportClients reads a JSON client feed from path, collecting invalid
// records rather than failing the whole import.
func ImportClients(path string) ([]model.Client, []RecordError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read client feed: %w", err)
	}

	var records []ClientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to parse client feed: %w", err)
	}

	var (
		clients []model.Client
		errored []RecordError
	)
	for i, record := range records {
		if reason := validateClient(record); reason != "" {
			errored = append(errored, RecordError{Index: i, ID: record.ID, Reason: reason})
			continue
		}

		clients = append(clients, model.Client{
			ID:                    record.ID,
			Name:                  record.Name,
			BusLineAccessible:     record.BusLineAccessible,
			Location:              location(record.Latitude, record.Longitude),
			PreferredCaregiverIDs: record.PreferredCaregiverIDs,
		})
	}

	return clients, errored, nil
}

func validateShift(record ShiftRecord) string {
	if err := validate.Struct(record); err != nil {
		return err.Error()
	}
	if _, err := timewindow.ParseDate(record.Date); err != nil {
		return fmt.Sprintf("invalid date %q", record.Date)
	}
	if _, err := timewindow.Parse(record.StartTime, record.EndTime); err != nil {
		return fmt.Sprintf("invalid time window %s-%s", record.StartTime, record.EndTime)
	}
	if (record.Latitude == nil) != (record.Longitude == nil) {
		return "latitude and longitude must be set together"
	}
	return ""
}

func validateCaregiver(record CaregiverRecord) string {
	if err := validate.Struct(record); err != nil {
		return err.Error()
	}
	for _, rule := range record.GeneralRules {
		if _, err := timewindow.Parse(rule.StartTime, rule.EndTime); err != nil {
			return fmt.Sprintf("invalid rule window %s-%s", rule.StartTime, rule.EndTime)
		}
		for _, exc := range rule.Exceptions {
			if _, err := timewindow.ParseDate(exc.Date); err != nil {
				return fmt.Sprintf("invalid exception date %q", exc.Date)
			}
			if exc.FullDay {
				continue
			}
			if _, err := timewindow.Parse(exc.StartTime, exc.EndTime); err != nil {
				return fmt.Sprintf("invalid exception window %s-%s", exc.StartTime, exc.EndTime)
			}
		}
	}
	for _, slot := range record.SpecificSlots {
		if _, err := timewindow.ParseDate(slot.Date); err != nil {
			return fmt.Sprintf("invalid slot date %q", slot.Date)
		}
		if _, err := timewindow.Parse(slot.StartTime, slot.EndTime); err != nil {
			return fmt.Sprintf("invalid slot window %s-%s", slot.StartTime, slot.EndTime)
		}
	}
	for _, off := range record.TimeOff {
		if _, err := timewindow.ParseDate(off.StartDate); err != nil {
			return fmt.Sprintf("invalid time off start date %q", off.StartDate)
		}
		if _, err := timewindow.ParseDate(off.EndDate); err != nil {
			return fmt.Sprintf("invalid time off end date %q", off.EndDate)
		}
	}
	if (record.Latitude == nil) != (record.Longitude == nil) {
		return "latitude and longitude must be set together"
	}
	return ""
}

func validateClient(record ClientRecord) string {
	if err := validate.Struct(record); err != nil {
		return err.Error()
	}
	if (record.Latitude == nil) != (record.Longitude == nil) {
		return "latitude and longitude must be set together"
	}
	return ""
}

func location(lat, lon *float64) *model.Location {
	if lat == nil || lon == nil {
		return nil
	}
	return &model.Location{Latitude: *lat, Longitude: *lon}
}
