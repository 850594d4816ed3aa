package model

import "time"

// Response is a user's current answer to one question. At most one
// current response exists per (user, question) pair; resubmission
// replaces the earlier value, last SubmittedAt wins.
type Response struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	QuestionID string           `json:"question_id"`
	Category   QuestionCategory `json:"category"`
	Type       QuestionType     `json:"type"`
	// Exactly one value field is set, matching Type. Single-choice
	// answers are stored as a one-element ChoiceIDs slice.
	Numeric     *float64   `json:"numeric_value,omitempty"`
	ChoiceIDs   []string   `json:"choice_ids,omitempty"`
	Text        string     `json:"text,omitempty"`
	Importance  Importance `json:"importance"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// ChoiceID returns the single selected choice for SINGLE_CHOICE
// responses, or "" when no choice is recorded.
func (r *Response) ChoiceID() string {
	if len(r.ChoiceIDs) == 0 {
		return ""
	}
	return r.ChoiceIDs[0]
}

// ResponseSnapshot is a consistent view of a user's current answers,
// keyed by question id. The store guarantees one value per question.
type ResponseSnapshot map[string]*Response

// RawAnswer is a single unvalidated answer submission. Exactly one of
// the value fields should be populated, matching the question's type.
type RawAnswer struct {
	QuestionID string   `json:"question_id"`
	Numeric    *float64 `json:"numeric_value,omitempty"`
	ChoiceID   string   `json:"choice_id,omitempty"`
	ChoiceIDs  []string `json:"choice_ids,omitempty"`
	Text       string   `json:"text,omitempty"`
	// Importance by wire name; empty means the question's default.
	Importance string `json:"importance,omitempty"`
}

// SubmitAnswersRequest is a batch submission of answers.
type SubmitAnswersRequest struct {
	Answers []RawAnswer `json:"answers"`
}

// SubmitFailure reports one rejected answer from a batch. Other answers
// in the same batch may still have been applied.
type SubmitFailure struct {
	QuestionID string         `json:"question_id"`
	Code       ValidationCode `json:"code"`
	Message    string         `json:"message"`
}

// SubmitResult reports the outcome of a batch submission. Partial
// success is explicit: Saved counts applied answers, Failures lists the
// rejected ones.
type SubmitResult struct {
	Saved    int             `json:"saved"`
	Failures []SubmitFailure `json:"failures,omitempty"`
}

// QuestionWithStatus pairs a bank question with whether the requesting
// user has answered it.
type QuestionWithStatus struct {
	Question *Question `json:"question"`
	Answered bool      `json:"answered"`
}

// CategoryQuestions is the per-category question listing with the
// requesting user's progress counts.
type CategoryQuestions struct {
	Category  QuestionCategory     `json:"category"`
	Questions []QuestionWithStatus `json:"questions"`
	Total     int                  `json:"total"`
	Answered  int                  `json:"answered"`
}

// CategoryProgress summarizes a user's progress in one category.
type CategoryProgress struct {
	Total      int     `json:"total"`
	Answered   int     `json:"answered"`
	Percentage float64 `json:"percentage"`
}

// Progress summarizes a user's onboarding progress across all categories.
type Progress struct {
	ByCategory map[QuestionCategory]CategoryProgress `json:"by_category"`
	Total      int                                   `json:"total"`
	Answered   int                                   `json:"answered"`
}
