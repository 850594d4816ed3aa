package repository

import (
	"context"
	"time"

	"github.com/embermatch/api/internal/database"
	"github.com/embermatch/api/internal/model"
)

// ResponseRepository persists user answers in the "answer" table. It
// enforces last-writer-wins per (user, question): a resubmission
// replaces the existing record instead of creating a second one.
type ResponseRepository struct {
	db database.Database
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db database.Database) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// UpsertResponse stores an answer, replacing the user's previous answer
// to the same question if one exists.
func (r *ResponseRepository) UpsertResponse(ctx context.Context, resp *model.Response) error {
	// SurrealDB 3.0 UPSERT doesn't work with WHERE clause properly
	// Use IF/ELSE pattern instead
	query := `
		LET $existing = SELECT * FROM answer WHERE user = $user_id AND question = $question_id;
		IF array::len($existing) = 0 {
			CREATE type::thing("answer", $id) CONTENT {
				user: $user_id,
				question: $question_id,
				category: $category,
				question_type: $question_type,
				numeric_value: $numeric_value,
				choice_ids: $choice_ids,
				text_value: $text_value,
				importance: $importance,
				submitted_at: <datetime> $submitted_at
			}
		} ELSE {
			UPDATE answer SET
				category = $category,
				question_type = $question_type,
				numeric_value = $numeric_value,
				choice_ids = $choice_ids,
				text_value = $text_value,
				importance = $importance,
				submitted_at = <datetime> $submitted_at
			WHERE user = $user_id AND question = $question_id
		}
	`

	vars := map[string]interface{}{
		"id":            resp.ID,
		"user_id":       resp.UserID,
		"question_id":   resp.QuestionID,
		"category":      string(resp.Category),
		"question_type": string(resp.Type),
		"numeric_value": resp.Numeric,
		"choice_ids":    resp.ChoiceIDs,
		"text_value":    resp.Text,
		"importance":    resp.Importance.String(),
		"submitted_at":  resp.SubmittedAt.UTC().Format(time.RFC3339Nano),
	}

	_, err := r.db.Query(ctx, query, vars)
	return err
}

// CurrentResponses retrieves the user's current answer set, keyed by
// question id. Rows that no longer parse are skipped rather than
// failing the whole snapshot.
func (r *ResponseRepository) CurrentResponses(ctx context.Context, userID string) (model.ResponseSnapshot, error) {
	query := `SELECT * FROM answer WHERE user = $user_id`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	snapshot := make(model.ResponseSnapshot)
	rows, _ := extractQueryResults(result)
	for _, row := range rows {
		resp, ok := parseResponseRow(row)
		if !ok {
			continue
		}
		// The upsert keeps one row per question, but if duplicates ever
		// appear the newest submission wins.
		if existing, dup := snapshot[resp.QuestionID]; dup && !resp.SubmittedAt.After(existing.SubmittedAt) {
			continue
		}
		snapshot[resp.QuestionID] = resp
	}
	return snapshot, nil
}

// DeleteResponses removes all of a user's answers.
func (r *ResponseRepository) DeleteResponses(ctx context.Context, userID string) error {
	query := `DELETE answer WHERE user = $user_id`
	return r.db.Execute(ctx, query, map[string]interface{}{"user_id": userID})
}

func parseResponseRow(row interface{}) (*model.Response, bool) {
	data, ok := row.(map[string]interface{})
	if !ok {
		return nil, false
	}

	questionID := getString(data, "question")
	if questionID == "" {
		return nil, false
	}

	category, err := model.ParseCategory(getString(data, "category"))
	if err != nil {
		return nil, false
	}
	qtype, err := model.ParseQuestionType(getString(data, "question_type"))
	if err != nil {
		return nil, false
	}
	importance, err := model.ParseImportance(getString(data, "importance"))
	if err != nil {
		return nil, false
	}

	return &model.Response{
		ID:          convertSurrealID(data["id"]),
		UserID:      getString(data, "user"),
		QuestionID:  questionID,
		Category:    category,
		Type:        qtype,
		Numeric:     getFloatPtr(data, "numeric_value"),
		ChoiceIDs:   getStringSlice(data, "choice_ids"),
		Text:        getString(data, "text_value"),
		Importance:  importance,
		SubmittedAt: parseTime(data["submitted_at"]),
	}, true
}
