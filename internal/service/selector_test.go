package service

import (
	"fmt"
	"testing"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// ============================================================================
// NextUnanswered Tests
// ============================================================================

func TestNextUnanswered_EmptySnapshot_FollowsCategoryPriority(t *testing.T) {
	t.Parallel()
	b := testBank(t)

	q := NextUnanswered(b, model.ResponseSnapshot{}, nil)

	// PERSONALITY outranks every other category in selection order.
	if q == nil || q.ID != "q_weekend" {
		t.Fatalf("expected q_weekend first, got %+v", q)
	}
}

func TestNextUnanswered_SkipsAnswered(t *testing.T) {
	t.Parallel()
	b := testBank(t)
	snap := snapshotOf(choiceResponse("q_weekend", model.ImportanceMedium, "hike"))

	q := NextUnanswered(b, snap, nil)

	// Next category in priority order with an unanswered question.
	if q == nil || q.ID != "q_smoking" {
		t.Fatalf("expected q_smoking next, got %+v", q)
	}
}

func TestNextUnanswered_CategoryFilter(t *testing.T) {
	t.Parallel()
	b := testBank(t)
	cat := model.CategoryLifestyle

	q := NextUnanswered(b, model.ResponseSnapshot{}, &cat)

	if q == nil || q.ID != "q_adventure" {
		t.Fatalf("expected q_adventure, got %+v", q)
	}
}

func TestNextUnanswered_AllAnswered_ReturnsNil(t *testing.T) {
	t.Parallel()
	b := testBank(t)
	snap := snapshotOf(
		choiceResponse("q_weekend", model.ImportanceMedium, "hike"),
		choiceResponse("q_smoking", model.ImportanceHigh, "never"),
		choiceResponse("q_faith", model.ImportanceMedium, "somewhat"),
		numericResponse("q_adventure", 3, model.ImportanceMedium),
		textResponse("q_story", "once, memorably", model.ImportanceMedium),
	)

	if q := NextUnanswered(b, snap, nil); q != nil {
		t.Fatalf("expected nil for a fully answered bank, got %s", q.ID)
	}
}

func TestNextUnanswered_Deterministic(t *testing.T) {
	t.Parallel()
	b := testBank(t)
	snap := snapshotOf(choiceResponse("q_weekend", model.ImportanceMedium, "read"))

	first := NextUnanswered(b, snap, nil)
	second := NextUnanswered(b, snap, nil)

	if first == nil || second == nil || first.ID != second.ID {
		t.Errorf("expected stable selection, got %+v then %+v", first, second)
	}
}

// ============================================================================
// NextBatch Tests
// ============================================================================

func TestNextBatch_RespectsLimit(t *testing.T) {
	t.Parallel()
	b := testBank(t)

	batch := NextBatch(b, model.ResponseSnapshot{}, nil, 2)

	if len(batch) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(batch))
	}
	if batch[0].ID != "q_weekend" || batch[1].ID != "q_smoking" {
		t.Errorf("unexpected batch order: %s, %s", batch[0].ID, batch[1].ID)
	}
}

func TestNextBatch_NonPositiveLimit_ReturnsNothing(t *testing.T) {
	t.Parallel()
	b := testBank(t)

	if batch := NextBatch(b, model.ResponseSnapshot{}, nil, 0); batch != nil {
		t.Errorf("expected nil for limit 0, got %d questions", len(batch))
	}
	if batch := NextBatch(b, model.ResponseSnapshot{}, nil, -3); batch != nil {
		t.Errorf("expected nil for negative limit, got %d questions", len(batch))
	}
}

func TestNextBatch_ClampsToMaxQuestionBatch(t *testing.T) {
	t.Parallel()
	defs := make([]bank.Definition, 0, model.MaxQuestionBatch+10)
	for i := 0; i < model.MaxQuestionBatch+10; i++ {
		defs = append(defs, bank.Definition{
			ID:       fmt.Sprintf("q_%03d", i),
			Text:     fmt.Sprintf("Scale question %d", i),
			Category: "VALUES",
			Type:     "NUMERIC_SCALE",
			Scale:    &model.NumericScale{Min: 1, Max: 7},
		})
	}
	big, err := bank.Load(defs)
	if err != nil {
		t.Fatalf("loading large bank: %v", err)
	}

	batch := NextBatch(big, model.ResponseSnapshot{}, nil, 10_000)

	if len(batch) != model.MaxQuestionBatch {
		t.Errorf("expected clamp to %d, got %d", model.MaxQuestionBatch, len(batch))
	}
}
