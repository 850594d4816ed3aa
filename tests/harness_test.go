package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/handler"
	"github.com/embermatch/api/internal/middleware"
	"github.com/embermatch/api/internal/model"
	"github.com/embermatch/api/internal/service"
	"github.com/embermatch/api/internal/testing/fixtures"
	"github.com/embermatch/api/internal/testing/helpers"
)

// memoryStore is an in-memory ResponseStore with last-write-wins
// semantics, matching what the SurrealDB repository guarantees.
type memoryStore struct {
	mu        sync.Mutex
	responses map[string]model.ResponseSnapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{responses: make(map[string]model.ResponseSnapshot)}
}

func (s *memoryStore) CurrentResponses(ctx context.Context, userID string) (model.ResponseSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(model.ResponseSnapshot, len(s.responses[userID]))
	for id, r := range s.responses[userID] {
		snap[id] = r
	}
	return snap, nil
}

func (s *memoryStore) UpsertResponse(ctx context.Context, resp *model.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.responses[resp.UserID] == nil {
		s.responses[resp.UserID] = make(model.ResponseSnapshot)
	}
	s.responses[resp.UserID][resp.QuestionID] = resp
	return nil
}

// testAPI bundles a fully wired API with the pieces tests reach into.
type testAPI struct {
	Handler  http.Handler
	JWT      *helpers.JWTHelper
	Store    *memoryStore
	Catalog  *bank.Catalog
	BankPath string
}

// writeBankFile serializes definitions to path in the bank file format.
func writeBankFile(t *testing.T, path string, defs []bank.Definition) {
	t.Helper()
	data, err := json.Marshal(bank.File{Questions: defs})
	if err != nil {
		t.Fatalf("marshaling bank file: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing bank file: %v", err)
	}
}

// newTestAPI wires the real handler stack against an in-memory store,
// mirroring the route table in cmd/server.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	jwtHelper := helpers.NewJWTHelper(t)
	store := newMemoryStore()
	catalog := fixtures.NewCatalog(t)

	assessmentService := service.NewAssessmentService(service.AssessmentServiceConfig{
		Catalog: catalog,
		Store:   store,
	})
	compatibilityService := service.NewCompatibilityService(service.CompatibilityServiceConfig{
		Catalog: catalog,
		Store:   store,
	})

	bankPath := filepath.Join(t.TempDir(), "questions.json")
	writeBankFile(t, bankPath, fixtures.BankDefinitions())

	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	matchingHandler := handler.NewMatchingHandler(compatibilityService)
	adminHandler := handler.NewAdminHandler(catalog, bankPath)

	authMiddleware := middleware.Auth(jwtHelper.Service())
	adminMiddleware := middleware.AdminAuth(jwtHelper.Service())

	mux := http.NewServeMux()
	mux.Handle("GET /v1/questions", authMiddleware(http.HandlerFunc(assessmentHandler.ListQuestions)))
	mux.HandleFunc("GET /v1/questions/categories", assessmentHandler.GetCategories)
	mux.Handle("GET /v1/questions/next", authMiddleware(http.HandlerFunc(assessmentHandler.NextQuestion)))
	mux.Handle("GET /v1/questions/next/batch", authMiddleware(http.HandlerFunc(assessmentHandler.NextQuestionBatch)))
	mux.HandleFunc("GET /v1/questions/{questionId}", assessmentHandler.GetQuestion)
	mux.Handle("POST /v1/profile/answers", authMiddleware(http.HandlerFunc(assessmentHandler.SubmitAnswers)))
	mux.HandleFunc("POST /v1/profile/answers/validate", assessmentHandler.ValidateAnswer)
	mux.Handle("GET /v1/profile/progress", authMiddleware(http.HandlerFunc(assessmentHandler.GetProgress)))
	mux.Handle("GET /v1/matches/{userId}/compatibility", authMiddleware(http.HandlerFunc(matchingHandler.GetCompatibility)))
	mux.Handle("GET /v1/matches/{userId}/explanation", authMiddleware(http.HandlerFunc(matchingHandler.GetExplanation)))
	mux.Handle("POST /v1/admin/questions/reload", adminMiddleware(http.HandlerFunc(adminHandler.ReloadBank)))

	return &testAPI{
		Handler:  middleware.Chain(mux, middleware.RequestID, middleware.Recovery),
		JWT:      jwtHelper,
		Store:    store,
		Catalog:  catalog,
		BankPath: bankPath,
	}
}
