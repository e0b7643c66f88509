package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

const monday = "2025-01-06"

func availableCaregiver() *model.Caregiver {
	return &model.Caregiver{
		ID:     "cg-1",
		Name:   "Rosa",
		Skills: []string{"medication", "mobility"},
		Availability: model.AvailabilityProfile{
			GeneralRules: []model.GeneralRule{
				{
					DaysOfWeek: []time.Weekday{time.Monday},
					StartTime:  "08:00",
					EndTime:    "16:00",
				},
			},
		},
	}
}

func mondayShift() *model.Shift {
	return &model.Shift{
		ID:        "shift-1",
		ClientID:  "client-1",
		Date:      monday,
		StartTime: "09:00",
		EndTime:   "11:00",
	}
}

func TestScore_NilInputs(t *testing.T) {
	scorer := NewScorer()
	caregiver := availableCaregiver()
	shift := mondayShift()
	client := &model.Client{ID: "client-1"}

	assert.Zero(t, scorer.Score(nil, shift, client, nil))
	assert.Zero(t, scorer.Score(caregiver, nil, client, nil))
	assert.Zero(t, scorer.Score(caregiver, shift, nil, nil))
}

func TestScore_UnavailableIsZero(t *testing.T) {
	scorer := NewScorer()
	caregiver := availableCaregiver()
	shift := mondayShift()
	shift.StartTime = "17:00"
	shift.EndTime = "19:00"

	assert.Zero(t, scorer.Score(caregiver, shift, &model.Client{}, nil))
}

func TestScore_BaseScore(t *testing.T) {
	scorer := NewScorer()

	// Available, no required skills, no locations, no preference: base 100
	score := scorer.Score(availableCaregiver(), mondayShift(), &model.Client{}, nil)
	assert.Equal(t, 100, score)
}

func TestScore_PreferenceBonus(t *testing.T) {
	scorer := NewScorer()
	client := &model.Client{PreferredCaregiverIDs: []string{"cg-1"}}

	score := scorer.Score(availableCaregiver(), mondayShift(), client, nil)
	assert.Equal(t, 110, score)
}

func TestScore_SkillGapPenalty(t *testing.T) {
	scorer := NewScorer()
	shift := mondayShift()
	shift.RequiredSkills = []string{"medication", "dementia"}

	// 1 of 2 skills matched: penalty (100-50)*0.2 = 10
	score := scorer.Score(availableCaregiver(), shift, &model.Client{}, nil)
	assert.Equal(t, 90, score)

	// 0 of 2 matched: penalty (100-0)*0.2 = 20
	shift.RequiredSkills = []string{"dementia", "wound care"}
	score = scorer.Score(availableCaregiver(), shift, &model.Client{}, nil)
	assert.Equal(t, 80, score)
}

func TestScore_ConflictPenalty(t *testing.T) {
	scorer := NewScorer()
	existing := []model.Assignment{
		{ID: "a1", CaregiverID: "cg-1", Date: monday, StartTime: "10:00", EndTime: "12:00", Status: model.AssignmentPending},
	}

	score := scorer.Score(availableCaregiver(), mondayShift(), &model.Client{}, existing)
	assert.Equal(t, 50, score)

	// A touching assignment is not a conflict
	existing[0].StartTime = "11:00"
	existing[0].EndTime = "13:00"
	score = scorer.Score(availableCaregiver(), mondayShift(), &model.Client{}, existing)
	assert.Equal(t, 100, score)
}

func TestScore_ProximityPenalty(t *testing.T) {
	scorer := NewScorer()

	caregiver := availableCaregiver()
	caregiver.Location = &model.Location{Latitude: 40.7128, Longitude: -74.0060}

	shift := mondayShift()
	shift.Location = &model.Location{Latitude: 40.7128, Longitude: -74.0060}

	// Zero distance: no penalty
	assert.Equal(t, 100, scorer.Score(caregiver, shift, &model.Client{}, nil))

	// Far beyond the 50-mile cap: full 30-point penalty
	shift.Location = &model.Location{Latitude: 34.0522, Longitude: -118.2437}
	assert.Equal(t, 70, scorer.Score(caregiver, shift, &model.Client{}, nil))
}

func TestScore_NonIncreasingInDistance(t *testing.T) {
	scorer := NewScorer()

	caregiver := availableCaregiver()
	caregiver.Location = &model.Location{Latitude: 40.0, Longitude: -74.0}

	prev := 101
	// Move the shift progressively further away
	for _, lonOffset := range []float64{0, 0.1, 0.3, 0.6, 1.0, 2.0, 5.0} {
		shift := mondayShift()
		shift.Location = &model.Location{Latitude: 40.0, Longitude: -74.0 - lonOffset}
		score := scorer.Score(caregiver, shift, &model.Client{}, nil)
		assert.LessOrEqual(t, score, prev, "score must not increase with distance")
		prev = score
	}
}

func TestScore_ClampedAtZero(t *testing.T) {
	scorer := NewScorer()

	caregiver := availableCaregiver()
	caregiver.Skills = nil
	caregiver.Location = &model.Location{Latitude: 40.7128, Longitude: -74.0060}

	shift := mondayShift()
	shift.RequiredSkills = []string{"dementia", "wound care", "hoist"}
	shift.Location = &model.Location{Latitude: 34.0522, Longitude: -118.2437}

	existing := []model.Assignment{
		{ID: "a1", CaregiverID: "cg-1", Date: monday, StartTime: "09:00", EndTime: "11:00", Status: model.AssignmentPending},
	}

	// 100 - 50 (conflict) - 20 (skills) - 30 (distance) = 0
	score := scorer.Score(caregiver, shift, &model.Client{}, existing)
	assert.GreaterOrEqual(t, score, 0)
	assert.Zero(t, score)
}
