package model

// Direction labels which side's preferences a factor was evaluated
// against. AToB reads "how acceptable B's answer is to A".
type Direction string

const (
	DirectionAToB Direction = "a_to_b"
	DirectionBToA Direction = "b_to_a"
)

// Factor is one question-level contribution to a match score.
// Contribution is signed: Weight * (2*Satisfaction - 1), so a full
// mismatch on a heavily weighted question ranks as strongly negative
// rather than merely zero.
type Factor struct {
	QuestionID   string           `json:"question_id"`
	Direction    Direction        `json:"direction"`
	Category     QuestionCategory `json:"category"`
	Weight       float64          `json:"weight"`
	Satisfaction float64          `json:"satisfaction"`
	Contribution float64          `json:"contribution"`
}

// DealbreakerViolation records that one side's mandatory constraint was
// violated by the other side's answer. Direction names whose constraint
// it was: AToB means A's mandatory requirement rejected B's answer.
type DealbreakerViolation struct {
	QuestionID string    `json:"question_id"`
	Direction  Direction `json:"direction"`
}

// CompatibilityResult is the computed match between two users. It is
// ephemeral: recomputed on demand, never persisted by the engine.
// Overall is symmetric between the two users; Factors directions are not.
type CompatibilityResult struct {
	UserA string `json:"user_a"`
	UserB string `json:"user_b"`
	// Overall is the geometric mean of the two directional
	// percentages, in [0,100].
	Overall     float64                      `json:"overall_percentage"`
	AToB        float64                      `json:"a_to_b_percentage"`
	BToA        float64                      `json:"b_to_a_percentage"`
	SharedCount int                          `json:"shared_count"`
	PerCategory map[QuestionCategory]float64 `json:"per_category,omitempty"`
	Factors     []Factor                     `json:"factors,omitempty"`
	Violations  []DealbreakerViolation       `json:"dealbreaker_violations,omitempty"`
}

// ExplanationFactor is one rendered entry in a match explanation.
type ExplanationFactor struct {
	QuestionID   string           `json:"question_id"`
	Direction    Direction        `json:"direction"`
	Category     QuestionCategory `json:"category"`
	Contribution float64          `json:"contribution"`
	Text         string           `json:"text"`
}

// Explanation lists the top positive and negative drivers of a match
// score, strongest first on each side.
type Explanation struct {
	Positives []ExplanationFactor `json:"positives"`
	Negatives []ExplanationFactor `json:"negatives"`
}

// DefaultExplanationFactors is how many positives and negatives an
// explanation carries when the caller does not ask for a specific count.
const DefaultExplanationFactors = 5
