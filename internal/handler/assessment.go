package handler

import (
	"net/http"
	"strconv"

	"github.com/embermatch/api/internal/middleware"
	"github.com/embermatch/api/internal/model"
	"github.com/embermatch/api/internal/service"
)

// AssessmentHandler handles question bank and answer endpoints
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// parseCategoryParam reads an optional ?category= query parameter.
// Returns (nil, nil) when the parameter is absent.
func parseCategoryParam(r *http.Request) (*model.QuestionCategory, *model.ProblemDetails) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil, nil
	}
	category, err := model.ParseCategory(raw)
	if err != nil {
		return nil, MapServiceError(service.ErrUnknownCategory)
	}
	return &category, nil
}

// ListQuestions handles GET /v1/questions - list questions with answered flags
func (h *AssessmentHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	category, pd := parseCategoryParam(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	if category != nil {
		questions, err := h.assessmentService.QuestionsByCategory(r.Context(), userID, *category)
		if err != nil {
			WriteError(w, MapServiceErrorWithContext(err, "list questions"))
			return
		}
		WriteData(w, http.StatusOK, questions, map[string]string{
			"self": "/v1/questions?category=" + string(*category),
		})
		return
	}

	questions, err := h.assessmentService.Questions(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list questions"))
		return
	}

	WriteCollection(w, http.StatusOK, questions, map[string]string{
		"self":       "/v1/questions",
		"categories": "/v1/questions/categories",
		"next":       "/v1/questions/next",
	})
}

// GetCategories handles GET /v1/questions/categories - list question categories
func (h *AssessmentHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.assessmentService.Categories()
	WriteCollection(w, http.StatusOK, categories, map[string]string{
		"self": "/v1/questions/categories",
	})
}

// GetQuestion handles GET /v1/questions/{questionId} - get a specific question
func (h *AssessmentHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionId")
	if questionID == "" {
		WriteError(w, model.NewBadRequestError("question ID required"))
		return
	}

	question, err := h.assessmentService.Question(questionID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, question, map[string]string{
		"self": "/v1/questions/" + questionID,
	})
}

// NextQuestion handles GET /v1/questions/next - next unanswered question.
// Responds 204 when every matching question is already answered.
func (h *AssessmentHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	category, pd := parseCategoryParam(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	question, err := h.assessmentService.NextQuestion(r.Context(), userID, category)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "next question"))
		return
	}
	if question == nil {
		WriteNoContent(w)
		return
	}

	WriteData(w, http.StatusOK, question, map[string]string{
		"self":   "/v1/questions/next",
		"answer": "/v1/profile/answers",
	})
}

// NextQuestionBatch handles GET /v1/questions/next/batch - next unanswered questions
func (h *AssessmentHandler) NextQuestionBatch(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	category, pd := parseCategoryParam(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	limit := model.DefaultQuestionBatch
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, model.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	questions, err := h.assessmentService.NextQuestions(r.Context(), userID, category, limit)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "next questions"))
		return
	}

	WriteCollection(w, http.StatusOK, questions, map[string]string{
		"self":   "/v1/questions/next/batch",
		"answer": "/v1/profile/answers",
	})
}

// SubmitAnswers handles POST /v1/profile/answers - submit a batch of answers
func (h *AssessmentHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.SubmitAnswersRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.assessmentService.SubmitAnswers(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "submit answers"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"progress": "/v1/profile/progress",
		"next":     "/v1/questions/next",
	})
}

// answerCheckResult is the body of a successful dry-run validation.
type answerCheckResult struct {
	QuestionID string `json:"question_id"`
	Valid      bool   `json:"valid"`
}

// ValidateAnswer handles POST /v1/profile/answers/validate - dry-run
// validation of a single answer. Nothing is stored.
func (h *AssessmentHandler) ValidateAnswer(w http.ResponseWriter, r *http.Request) {
	var raw model.RawAnswer
	if err := DecodeJSON(r, &raw); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if ve := h.assessmentService.CheckAnswer(raw); ve != nil {
		WriteError(w, model.NewAnswerRejectedProblem(ve))
		return
	}

	WriteData(w, http.StatusOK, answerCheckResult{
		QuestionID: raw.QuestionID,
		Valid:      true,
	}, nil)
}

// GetProgress handles GET /v1/profile/progress - onboarding progress
func (h *AssessmentHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	progress, err := h.assessmentService.Progress(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "progress"))
		return
	}

	WriteData(w, http.StatusOK, progress, map[string]string{
		"self": "/v1/profile/progress",
		"next": "/v1/questions/next",
	})
}
