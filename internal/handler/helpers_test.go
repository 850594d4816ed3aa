package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/middleware"
	"github.com/embermatch/api/internal/model"
	"github.com/embermatch/api/internal/service"
)

// ============================================================================
// Bank Fixture
// ============================================================================

func testDefinitions() []bank.Definition {
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
	}
}

func testCatalog(t *testing.T) *bank.Catalog {
	t.Helper()
	b, err := bank.Load(testDefinitions())
	if err != nil {
		t.Fatalf("loading test bank: %v", err)
	}
	return bank.NewCatalog(b)
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
// Test Helpers
// ============================================================================

func numericResponse(userID, questionID string, value float64, importance model.Importance) *model.Response {
	return &model.Response{
		ID:          "answer:" + userID + ":" + questionID,
		UserID:      userID,
		QuestionID:  questionID,
		Category:    model.CategoryLifestyle,
		Type:        model.TypeNumericScale,
		Numeric:     &value,
		Importance:  importance,
		SubmittedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func snapshotStore(snapshots map[string]model.ResponseSnapshot) *mockResponseStore {
	return &mockResponseStore{
		currentResponsesFunc: func(ctx context.Context, userID string) (model.ResponseSnapshot, error) {
			if snap, ok := snapshots[userID]; ok {
				return snap, nil
			}
			return model.ResponseSnapshot{}, nil
		},
	}
}

func newAssessmentHandler(t *testing.T, store service.ResponseStore) *AssessmentHandler {
	t.Helper()
	svc := service.NewAssessmentService(service.AssessmentServiceConfig{
		Catalog: testCatalog(t),
		Store:   store,
	})
	return NewAssessmentHandler(svc)
}

func newMatchingHandler(t *testing.T, store service.ResponseStore) *MatchingHandler {
	t.Helper()
	svc := service.NewCompatibilityService(service.CompatibilityServiceConfig{
		Catalog: testCatalog(t),
		Store:   store,
	})
	return NewMatchingHandler(svc)
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) *model.ProblemDetails {
	t.Helper()
	var pd model.ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&pd); err != nil {
		t.Fatalf("decoding problem details: %v", err)
	}
	return &pd
}

func floatPtr(v float64) *float64 { return &v }
