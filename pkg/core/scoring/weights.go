package scoring

// Built-in weights for the candidate fitness score
const (
	// BaseScore is the starting score for an eligible candidate
	BaseScore = 100.0

	// ConflictPenalty is subtracted when the caregiver already holds an
	// overlapping assignment on the shift date. This is a soft signal;
	// the optimizer's filter stage performs the hard exclusion.
	ConflictPenalty = 50.0

	// SkillGapWeight scales the penalty for missing required skills:
	// (100 - matchPercent) * SkillGapWeight
	SkillGapWeight = 0.2

	// DistanceCapMiles caps the distance considered for the proximity
	// penalty. Anything further is penalised as if at the cap.
	DistanceCapMiles = 50.0

	// MaxProximityPenalty is the penalty applied at or beyond the cap
	MaxProximityPenalty = 30.0

	// PreferenceBonus is added when the caregiver appears in the
	// client's preferred caregiver list
	PreferenceBonus = 10.0
)
