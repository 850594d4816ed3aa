// Package fixtures provides reusable test data builders.
//
// Builders return fully populated values with sensible defaults; tests
// override only the fields they care about. Seed* functions write
// fixtures through a repository so DB-backed tests start from known
// state.
package fixtures

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
	"github.com/embermatch/api/internal/service"
)

// FixedTime is the submission timestamp all fixture responses share.
// Deterministic timestamps keep last-write-wins assertions stable.
var FixedTime = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

// ============================================================================
// Question Bank Fixtures
// ============================================================================

// BankDefinitions returns a small but representative question bank:
// one question of every answerable type plus a free-text prompt.
func BankDefinitions() []bank.Definition {
	return []bank.Definition{
		{
			ID:       "q_adventure",
			Text:     "How adventurous are your weekend plans?",
			Category: "LIFESTYLE",
			Type:     "NUMERIC_SCALE",
			Scale:    &model.NumericScale{Min: 1, Max: 5},
		},
		{
			ID:       "q_smoking",
			Text:     "Do you smoke?",
			Category: "DEALBREAKER",
			Type:     "SINGLE_CHOICE",
			Choices: []model.Choice{
				{ID: "never", Label: "Never"},
				{ID: "socially", Label: "Socially"},
				{ID: "daily", Label: "Daily"},
			},
			Unacceptable:      &model.UnacceptableSet{ChoiceIDs: []string{"daily"}},
			DefaultImportance: "high",
		},
		{
			ID:       "q_faith",
			Text:     "How important is faith in your life?",
			Category: "VALUES",
			Type:     "SINGLE_CHOICE",
			Choices: []model.Choice{
				{ID: "none", Label: "Not at all"},
				{ID: "somewhat", Label: "Somewhat"},
				{ID: "devout", Label: "Very important"},
			},
		},
		{
			ID:       "q_weekend",
			Text:     "Pick your ideal weekend activities.",
			Category: "PERSONALITY",
			Type:     "MULTI_CHOICE",
			Choices: []model.Choice{
				{ID: "hike", Label: "Hiking"},
				{ID: "read", Label: "Reading"},
				{ID: "party", Label: "Partying"},
				{ID: "cook", Label: "Cooking"},
			},
		},
		{
			ID:       "q_story",
			Text:     "Tell us about a formative experience.",
			Category: "RED_FLAG",
			Type:     "FREE_TEXT",
		},
	}
}

// NewBank loads BankDefinitions into a Bank, failing the test on error.
func NewBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Load(BankDefinitions())
	if err != nil {
		t.Fatalf("fixtures: loading bank: %v", err)
	}
	return b
}

// NewCatalog wraps NewBank in a reloadable catalog.
func NewCatalog(t *testing.T) *bank.Catalog {
	t.Helper()
	return bank.NewCatalog(NewBank(t))
}

// ============================================================================
// Response Fixtures
// ============================================================================

// NumericResponse builds a numeric scale answer.
func NumericResponse(userID, questionID string, value float64, importance model.Importance) *model.Response {
	return &model.Response{
		ID:          uuid.New().String(),
		UserID:      userID,
		QuestionID:  questionID,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeNumericScale,
		Numeric:     &value,
		Importance:  importance,
		SubmittedAt: FixedTime,
	}
}

// ChoiceResponse builds a single or multi choice answer. The category
// and type default to a single choice; override on the returned value
// when the question differs.
func ChoiceResponse(userID, questionID string, importance model.Importance, choiceIDs ...string) *model.Response {
	return &model.Response{
		ID:          uuid.New().String(),
		UserID:      userID,
		QuestionID:  questionID,
		Category:    model.CategoryValues,
		Type:        model.TypeSingleChoice,
		ChoiceIDs:   choiceIDs,
		Importance:  importance,
		SubmittedAt: FixedTime,
	}
}

// TextResponse builds a free-text answer.
func TextResponse(userID, questionID, text string) *model.Response {
	return &model.Response{
		ID:          uuid.New().String(),
		UserID:      userID,
		QuestionID:  questionID,
		Category:    model.CategoryRedFlag,
		Type:        model.TypeFreeText,
		Text:        text,
		Importance:  model.ImportanceMedium,
		SubmittedAt: FixedTime,
	}
}

// Snapshot builds a ResponseSnapshot from responses.
func Snapshot(responses ...*model.Response) model.ResponseSnapshot {
	snap := make(model.ResponseSnapshot, len(responses))
	for _, r := range responses {
		snap[r.QuestionID] = r
	}
	return snap
}

// ============================================================================
// Seeding
// ============================================================================

// SeedResponses writes responses through the store, failing the test on
// any error.
func SeedResponses(t *testing.T, store service.ResponseStore, responses ...*model.Response) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i, r := range responses {
		if err := store.UpsertResponse(ctx, r); err != nil {
			t.Fatalf("fixtures: seeding response %d (%s/%s): %v", i, r.UserID, r.QuestionID, err)
		}
	}
}

// SeedCompatiblePair seeds two users with identical answers to every
// scorable question in BankDefinitions, producing a 100% match.
func SeedCompatiblePair(t *testing.T, store service.ResponseStore, userA, userB string) {
	t.Helper()
	for _, userID := range []string{userA, userB} {
		adventure := NumericResponse(userID, "q_adventure", 4, model.ImportanceMedium)
		smoking := ChoiceResponse(userID, "q_smoking", model.ImportanceMandatory, "never")
		smoking.Category = model.CategoryDealbreaker
		faith := ChoiceResponse(userID, "q_faith", model.ImportanceLow, "somewhat")
		weekend := ChoiceResponse(userID, "q_weekend", model.ImportanceMedium, "hike", "cook")
		weekend.Category = model.CategoryPersonality
		weekend.Type = model.TypeMultiChoice
		SeedResponses(t, store, adventure, smoking, faith, weekend)
	}
}

// UserID returns a unique user id with a readable prefix.
func UserID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}
