package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// ============================================================================
// Shared Fixtures
// ============================================================================

// testBank builds the bank used across service tests: one question of
// each scorable type plus a free-text one, spanning several categories.
func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Load([]bank.Definition{
		{
			ID:       "q_adventure",
			Text:     "How adventurous are your weekends?",
			Category: "LIFESTYLE",
			Type:     "NUMERIC_SCALE",
			Scale:    &model.NumericScale{Min: 1, Max: 5},
		},
		{
			ID:       "q_smoking",
			Text:     "How often do you smoke?",
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
				{ID: "devout", Label: "Central"},
			},
		},
		{
			ID:       "q_weekend",
			Text:     "Pick your ideal weekend activities",
			Category: "PERSONALITY",
			Type:     "MULTI_CHOICE",
			Choices: []model.Choice{
				{ID: "hike", Label: "Hiking"},
				{ID: "read", Label: "Reading"},
				{ID: "party", Label: "Going out"},
				{ID: "cook", Label: "Cooking"},
			},
		},
		{
			ID:       "q_story",
			Text:     "Tell us about a time you changed your mind",
			Category: "RED_FLAG",
			Type:     "FREE_TEXT",
		},
	})
	if err != nil {
		t.Fatalf("loading test bank: %v", err)
	}
	return b
}

func testCatalog(t *testing.T) *bank.Catalog {
	t.Helper()
	return bank.NewCatalog(testBank(t))
}

// ============================================================================
// Mock ResponseStore
// ============================================================================

type mockResponseStore struct {
	currentResponsesFunc func(ctx context.Context, userID string) (model.ResponseSnapshot, error)
	upsertResponseFunc   func(ctx context.Context, resp *model.Response) error
}

func (m *mockResponseStore) CurrentResponses(ctx context.Context, userID string) (model.ResponseSnapshot, error) {
	if m.currentResponsesFunc != nil {
		return m.currentResponsesFunc(ctx, userID)
	}
	return model.ResponseSnapshot{}, nil
}

func (m *mockResponseStore) UpsertResponse(ctx context.Context, resp *model.Response) error {
	if m.upsertResponseFunc != nil {
		return m.upsertResponseFunc(ctx, resp)
	}
	return nil
}

// ============================================================================
// Response Builders
// ============================================================================

func numericResponse(questionID string, value float64, importance model.Importance) *model.Response {
	return &model.Response{
		QuestionID:  questionID,
		Type:        model.TypeNumericScale,
		Numeric:     &value,
		Importance:  importance,
		SubmittedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func choiceResponse(questionID string, importance model.Importance, choiceIDs ...string) *model.Response {
	return &model.Response{
		QuestionID:  questionID,
		Type:        model.TypeSingleChoice,
		ChoiceIDs:   choiceIDs,
		Importance:  importance,
		SubmittedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func textResponse(questionID string, text string, importance model.Importance) *model.Response {
	return &model.Response{
		QuestionID:  questionID,
		Type:        model.TypeFreeText,
		Text:        text,
		Importance:  importance,
		SubmittedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func snapshotOf(responses ...*model.Response) model.ResponseSnapshot {
	snap := make(model.ResponseSnapshot, len(responses))
	for _, r := range responses {
		snap[r.QuestionID] = r
	}
	return snap
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
