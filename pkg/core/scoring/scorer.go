// Package scoring computes the fitness score of a (caregiver, shift) pair.
package scoring

import (
	"math"
	"slices"

	"github.com/brightpath-care/shiftmatch/pkg/core/availability"
	"github.com/brightpath-care/shiftmatch/pkg/core/conflict"
	"github.com/brightpath-care/shiftmatch/pkg/core/geo"
	"github.com/brightpath-care/shiftmatch/pkg/core/model"
)

// Scorer scores caregivers against shifts. Zero means ineligible.
type Scorer struct {
	resolver *availability.Resolver
}

// NewScorer creates a Scorer backed by the standard availability chain
func NewScorer() *Scorer {
	return &Scorer{resolver: availability.NewResolver()}
}

// Score returns the fitness score for assigning the caregiver to the
// shift, from 0 (ineligible) upward. existing holds the caregiver's
// current assignments, used to detect soft conflicts on the shift date.
//
// Nil caregiver, shift or client inputs score 0 instead of panicking so
// that one bad record never aborts a scoring loop over all candidates.
func (s *Scorer) Score(caregiver *model.Caregiver, shift *model.Shift, client *model.Client, existing []model.Assignment) int {
	if caregiver == nil || shift == nil || client == nil {
		return 0
	}

	if !s.resolver.IsAvailable(caregiver.Availability, shift.Date, shift.StartTime, shift.EndTime) {
		return 0
	}

	score := BaseScore

	if len(conflict.FindConflicts(*shift, existing)) > 0 {
		score -= ConflictPenalty
	}

	score -= (100 - skillMatchPercent(shift.RequiredSkills, caregiver.Skills)) * SkillGapWeight

	if caregiver.Location != nil && shift.Location != nil {
		distance := geo.Distance(
			caregiver.Location.Latitude, caregiver.Location.Longitude,
			shift.Location.Latitude, shift.Location.Longitude,
		)
		score -= math.Min(distance, DistanceCapMiles) / DistanceCapMiles * MaxProximityPenalty
	}

	if slices.Contains(client.PreferredCaregiverIDs, caregiver.ID) {
		score += PreferenceBonus
	}

	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// skillMatchPercent returns the percentage of required skills present in
// the caregiver's skill set. No required skills is a full match.
func skillMatchPercent(required, held []string) float64 {
	if len(required) == 0 {
		return 100
	}
	matched := 0
	for _, skill := range required {
		if slices.Contains(held, skill) {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 100
}
