package service

import (
	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// NextUnanswered returns the first question the user has not answered,
// in deterministic selection order: fixed category priority, then
// ascending question id. A nil category searches the whole bank.
// Returns nil when every matching question is answered. Repeated calls
// with an unchanged snapshot always return the same question.
func NextUnanswered(b *bank.Bank, snapshot model.ResponseSnapshot, category *model.QuestionCategory) *model.Question {
	batch := NextBatch(b, snapshot, category, 1)
	if len(batch) == 0 {
		return nil
	}
	return batch[0]
}

// NextBatch returns up to limit unanswered questions in selection order.
// The limit is clamped to model.MaxQuestionBatch; non-positive limits
// return nothing.
func NextBatch(b *bank.Bank, snapshot model.ResponseSnapshot, category *model.QuestionCategory, limit int) []*model.Question {
	if limit <= 0 {
		return nil
	}
	if limit > model.MaxQuestionBatch {
		limit = model.MaxQuestionBatch
	}

	var batch []*model.Question
	for _, q := range b.SelectionOrder() {
		if category != nil && q.Category != *category {
			continue
		}
		if _, answered := snapshot[q.ID]; answered {
			continue
		}
		batch = append(batch, q)
		if len(batch) == limit {
			break
		}
	}
	return batch
}
