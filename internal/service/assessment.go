package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// AssessmentService drives onboarding: listing questions, picking the
// next unanswered ones, and accepting answer submissions.
type AssessmentService struct {
	catalog *bank.Catalog
	store   ResponseStore
	now     func() time.Time
}

// AssessmentServiceConfig holds dependencies for AssessmentService.
type AssessmentServiceConfig struct {
	Catalog *bank.Catalog
	Store   ResponseStore
	// Now overrides the submission clock; nil means time.Now.
	Now func() time.Time
}

// NewAssessmentService creates a new assessment service.
func NewAssessmentService(cfg AssessmentServiceConfig) *AssessmentService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AssessmentService{
		catalog: cfg.Catalog,
		store:   cfg.Store,
		now:     now,
	}
}

// Categories lists all question categories in selection-priority order.
func (s *AssessmentService) Categories() []model.CategoryInfo {
	return model.GetQuestionCategories()
}

// QuestionsByCategory lists a category's questions in display order,
// flagged with whether the user has answered each.
func (s *AssessmentService) QuestionsByCategory(ctx context.Context, userID string, category model.QuestionCategory) (*model.CategoryQuestions, error) {
	b := s.catalog.Current()
	questions := b.ByCategory(category)

	snapshot, err := s.store.CurrentResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading responses for %s: %w", userID, err)
	}

	out := &model.CategoryQuestions{
		Category:  category,
		Questions: make([]model.QuestionWithStatus, 0, len(questions)),
		Total:     len(questions),
	}
	for _, q := range questions {
		_, answered := snapshot[q.ID]
		if answered {
			out.Answered++
		}
		out.Questions = append(out.Questions, model.QuestionWithStatus{
			Question: q,
			Answered: answered,
		})
	}
	return out, nil
}

// Question returns a single question from the active bank.
func (s *AssessmentService) Question(id string) (*model.Question, error) {
	q, ok := s.catalog.Current().ByID(id)
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// Questions lists every category's questions with answered flags, in
// selection-priority order. One snapshot load covers all categories.
func (s *AssessmentService) Questions(ctx context.Context, userID string) ([]*model.CategoryQuestions, error) {
	b := s.catalog.Current()

	snapshot, err := s.store.CurrentResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading responses for %s: %w", userID, err)
	}

	out := make([]*model.CategoryQuestions, 0, len(model.CategoryPriority()))
	for _, category := range model.CategoryPriority() {
		questions := b.ByCategory(category)
		cq := &model.CategoryQuestions{
			Category:  category,
			Questions: make([]model.QuestionWithStatus, 0, len(questions)),
			Total:     len(questions),
		}
		for _, q := range questions {
			_, answered := snapshot[q.ID]
			if answered {
				cq.Answered++
			}
			cq.Questions = append(cq.Questions, model.QuestionWithStatus{
				Question: q,
				Answered: answered,
			})
		}
		out = append(out, cq)
	}
	return out, nil
}

// NextQuestion returns the next unanswered question for the user, or
// nil when every matching question is answered. A nil category searches
// the whole bank in selection order.
func (s *AssessmentService) NextQuestion(ctx context.Context, userID string, category *model.QuestionCategory) (*model.Question, error) {
	batch, err := s.NextQuestions(ctx, userID, category, 1)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}
	return batch[0], nil
}

// NextQuestions returns up to limit unanswered questions in selection
// order. The limit is clamped to model.MaxQuestionBatch.
func (s *AssessmentService) NextQuestions(ctx context.Context, userID string, category *model.QuestionCategory, limit int) ([]*model.Question, error) {
	snapshot, err := s.store.CurrentResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading responses for %s: %w", userID, err)
	}
	return NextBatch(s.catalog.Current(), snapshot, category, limit), nil
}

// CheckAnswer validates a raw answer against the active bank without
// persisting anything. Nil means the answer would be accepted.
func (s *AssessmentService) CheckAnswer(raw model.RawAnswer) *model.ValidationError {
	q, ok := s.catalog.Current().ByID(raw.QuestionID)
	if !ok {
		return model.NewValidationError(raw.QuestionID, model.ValidationUnknownQuestion,
			"question %q does not exist", raw.QuestionID)
	}
	_, verr := ValidateAnswer(q, raw)
	return verr
}

// SubmitAnswers validates and stores a batch of answers with partial
// success: valid answers are applied even when others in the same batch
// are rejected, and each rejection is reported per question. Submitting
// an already-answered question replaces the earlier answer. Returns
// ErrEmptyBatch or ErrBatchTooLarge without applying anything; a storage
// failure aborts mid-batch, already-applied answers stay applied.
func (s *AssessmentService) SubmitAnswers(ctx context.Context, userID string, req model.SubmitAnswersRequest) (*model.SubmitResult, error) {
	if len(req.Answers) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(req.Answers) > MaxAnswersPerBatch {
		return nil, ErrBatchTooLarge
	}

	b := s.catalog.Current()
	result := &model.SubmitResult{}

	for _, raw := range req.Answers {
		q, ok := b.ByID(raw.QuestionID)
		if !ok {
			result.Failures = append(result.Failures, model.SubmitFailure{
				QuestionID: raw.QuestionID,
				Code:       model.ValidationUnknownQuestion,
				Message:    fmt.Sprintf("question %q does not exist", raw.QuestionID),
			})
			continue
		}

		resp, verr := ValidateAnswer(q, raw)
		if verr != nil {
			result.Failures = append(result.Failures, model.SubmitFailure{
				QuestionID: verr.QuestionID,
				Code:       verr.Code,
				Message:    verr.Message,
			})
			continue
		}

		resp.ID = uuid.New().String()
		resp.UserID = userID
		resp.SubmittedAt = s.now().UTC()

		if err := s.store.UpsertResponse(ctx, resp); err != nil {
			return nil, fmt.Errorf("storing answer to %s: %w", resp.QuestionID, err)
		}
		result.Saved++
	}
	return result, nil
}

// Progress summarizes how much of the bank the user has answered,
// overall and per category. Stored answers to questions no longer in
// the bank are ignored.
func (s *AssessmentService) Progress(ctx context.Context, userID string) (*model.Progress, error) {
	snapshot, err := s.store.CurrentResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading responses for %s: %w", userID, err)
	}

	b := s.catalog.Current()
	progress := &model.Progress{
		ByCategory: make(map[model.QuestionCategory]model.CategoryProgress),
	}
	for _, cat := range model.CategoryPriority() {
		questions := b.ByCategory(cat)
		if len(questions) == 0 {
			continue
		}
		cp := model.CategoryProgress{Total: len(questions)}
		for _, q := range questions {
			if _, ok := snapshot[q.ID]; ok {
				cp.Answered++
			}
		}
		cp.Percentage = roundPct(float64(cp.Answered) / float64(cp.Total) * 100)
		progress.ByCategory[cat] = cp
		progress.Total += cp.Total
		progress.Answered += cp.Answered
	}
	return progress, nil
}

// roundPct rounds to two decimal places for progress display.
func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
