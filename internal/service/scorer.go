package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// CompatibilityService computes bidirectional match scores between two
// users from their stored answers. Scores are derived on demand and
// never persisted; the same catalog and the same two snapshots always
// produce the same result.
type CompatibilityService struct {
	catalog *bank.Catalog
	store   ResponseStore
}

// CompatibilityServiceConfig holds dependencies for CompatibilityService.
type CompatibilityServiceConfig struct {
	Catalog *bank.Catalog
	Store   ResponseStore
}

// NewCompatibilityService creates a new compatibility service.
func NewCompatibilityService(cfg CompatibilityServiceConfig) *CompatibilityService {
	return &CompatibilityService{
		catalog: cfg.Catalog,
		store:   cfg.Store,
	}
}

// CalculateMatch loads both users' current answers and scores them
// against the active question bank. Returns ErrInsufficientData when the
// two users share no scorable answered questions, or when every shared
// question is marked irrelevant on both sides.
func (s *CompatibilityService) CalculateMatch(ctx context.Context, userA, userB string) (*model.CompatibilityResult, error) {
	respA, err := s.store.CurrentResponses(ctx, userA)
	if err != nil {
		return nil, fmt.Errorf("loading responses for %s: %w", userA, err)
	}
	respB, err := s.store.CurrentResponses(ctx, userB)
	if err != nil {
		return nil, fmt.Errorf("loading responses for %s: %w", userB, err)
	}
	return Score(s.catalog.Current(), userA, userB, respA, respB)
}

// Explain computes the match and renders its strongest drivers into
// human-readable text. topN bounds each of the positive and negative
// lists; zero or negative means the default count.
func (s *CompatibilityService) Explain(ctx context.Context, userA, userB string, topN int) (*model.Explanation, error) {
	result, err := s.CalculateMatch(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	return GenerateExplanation(s.catalog.Current(), result, topN), nil
}

// directional accumulates one side's weighted satisfaction totals.
type directional struct {
	earned     float64
	total      float64
	byCategory map[model.QuestionCategory]*categoryTotals
}

type categoryTotals struct {
	earned float64
	total  float64
}

func newDirectional() *directional {
	return &directional{byCategory: make(map[model.QuestionCategory]*categoryTotals)}
}

func (d *directional) add(cat model.QuestionCategory, weight, satisfaction float64) {
	d.earned += weight * satisfaction
	d.total += weight
	ct, ok := d.byCategory[cat]
	if !ok {
		ct = &categoryTotals{}
		d.byCategory[cat] = ct
	}
	ct.earned += weight * satisfaction
	ct.total += weight
}

// percentage of weighted satisfaction earned, in [0,100]. A direction
// with no weight at all is vacuously satisfied: that side asked for
// nothing, so nothing was denied.
func percentage(earned, total float64) float64 {
	if total == 0 {
		return 100
	}
	return earned / total * 100
}

// Score computes the compatibility between two response snapshots
// against a question bank. It is pure: no I/O, no clock, no randomness.
// Snapshots are assumed to contain only answers that passed validation
// against the same bank.
func Score(b *bank.Bank, userA, userB string, respA, respB model.ResponseSnapshot) (*model.CompatibilityResult, error) {
	shared := sharedScorable(b, respA, respB)
	if len(shared) == 0 {
		return nil, ErrInsufficientData
	}

	aToB := newDirectional()
	bToA := newDirectional()
	factors := make([]model.Factor, 0, 2*len(shared))
	var violations []model.DealbreakerViolation

	for _, q := range shared {
		ansA := respA[q.ID]
		ansB := respB[q.ID]

		satAB, violAB := satisfaction(q, ansA, ansB)
		satBA, violBA := satisfaction(q, ansB, ansA)

		wAB := ansA.Importance.Weight()
		wBA := ansB.Importance.Weight()

		aToB.add(q.Category, wAB, satAB)
		bToA.add(q.Category, wBA, satBA)

		factors = append(factors,
			model.Factor{
				QuestionID:   q.ID,
				Direction:    model.DirectionAToB,
				Category:     q.Category,
				Weight:       wAB,
				Satisfaction: satAB,
				Contribution: wAB * (2*satAB - 1),
			},
			model.Factor{
				QuestionID:   q.ID,
				Direction:    model.DirectionBToA,
				Category:     q.Category,
				Weight:       wBA,
				Satisfaction: satBA,
				Contribution: wBA * (2*satBA - 1),
			},
		)

		if violAB {
			violations = append(violations, model.DealbreakerViolation{
				QuestionID: q.ID,
				Direction:  model.DirectionAToB,
			})
		}
		if violBA {
			violations = append(violations, model.DealbreakerViolation{
				QuestionID: q.ID,
				Direction:  model.DirectionBToA,
			})
		}
	}

	// Both sides marking everything irrelevant carries no signal.
	if aToB.total == 0 && bToA.total == 0 {
		return nil, ErrInsufficientData
	}

	pctAB := percentage(aToB.earned, aToB.total)
	pctBA := percentage(bToA.earned, bToA.total)

	return &model.CompatibilityResult{
		UserA:       userA,
		UserB:       userB,
		Overall:     math.Sqrt(pctAB * pctBA),
		AToB:        pctAB,
		BToA:        pctBA,
		SharedCount: len(shared),
		PerCategory: categoryScores(aToB, bToA),
		Factors:     factors,
		Violations:  violations,
	}, nil
}

// sharedScorable returns, in ascending question-id order, the bank
// questions both users have answered, excluding free-text questions.
func sharedScorable(b *bank.Bank, respA, respB model.ResponseSnapshot) []*model.Question {
	var shared []*model.Question
	for id, ra := range respA {
		if ra == nil {
			continue
		}
		if _, ok := respB[id]; !ok {
			continue
		}
		q, ok := b.ByID(id)
		if !ok || q.Type == model.TypeFreeText {
			continue
		}
		shared = append(shared, q)
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].ID < shared[j].ID })
	return shared
}

// satisfaction scores how acceptable evaluated's answer is to evaluator,
// in [0,1]. The second return reports a dealbreaker violation: when the
// evaluator marked the question mandatory and the question defines an
// unacceptable set, the score is binary, 0 on a hit and 1 otherwise.
func satisfaction(q *model.Question, evaluator, evaluated *model.Response) (float64, bool) {
	if evaluator.Importance == model.ImportanceMandatory && q.Unacceptable != nil {
		if unacceptableHit(q, evaluated) {
			return 0, true
		}
		return 1, false
	}
	return proximity(q, evaluator, evaluated), false
}

// unacceptableHit reports whether an answer falls in the question's
// unacceptable set.
func unacceptableHit(q *model.Question, answer *model.Response) bool {
	set := q.Unacceptable
	switch q.Type {
	case model.TypeNumericScale:
		return set.Range != nil && answer.Numeric != nil && set.Range.Contains(*answer.Numeric)
	case model.TypeSingleChoice, model.TypeMultiChoice:
		for _, banned := range set.ChoiceIDs {
			for _, chosen := range answer.ChoiceIDs {
				if banned == chosen {
					return true
				}
			}
		}
	}
	return false
}

// proximity measures answer similarity in [0,1] by question type:
// numeric scales use linear distance over the scale span, single choice
// uses normalized index distance over the ordered choice list, multi
// choice uses Jaccard overlap.
func proximity(q *model.Question, a, b *model.Response) float64 {
	switch q.Type {
	case model.TypeNumericScale:
		if a.Numeric == nil || b.Numeric == nil || q.Scale == nil {
			return 0
		}
		span := q.Scale.Max - q.Scale.Min
		if span == 0 {
			return 1
		}
		return 1 - math.Abs(*a.Numeric-*b.Numeric)/span
	case model.TypeSingleChoice:
		ia := q.ChoiceIndex(a.ChoiceID())
		ib := q.ChoiceIndex(b.ChoiceID())
		if ia < 0 || ib < 0 {
			return 0
		}
		if ia == ib {
			return 1
		}
		return 1 - math.Abs(float64(ia-ib))/float64(len(q.Choices)-1)
	case model.TypeMultiChoice:
		return jaccard(a.ChoiceIDs, b.ChoiceIDs)
	}
	return 0
}

// jaccard returns |a∩b| / |a∪b| over two choice-id sets.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inA := make(map[string]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	union := len(inA)
	inter := 0
	seen := make(map[string]bool, len(b))
	for _, id := range b {
		if seen[id] {
			continue
		}
		seen[id] = true
		if inA[id] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// categoryScores folds the two directional per-category totals into the
// geometric-mean subscores. A category appears only when at least one
// side put weight on it.
func categoryScores(aToB, bToA *directional) map[model.QuestionCategory]float64 {
	out := make(map[model.QuestionCategory]float64)
	for _, cat := range model.CategoryPriority() {
		ctA, okA := aToB.byCategory[cat]
		ctB, okB := bToA.byCategory[cat]
		if !okA && !okB {
			continue
		}
		var totalA, earnedA, totalB, earnedB float64
		if okA {
			totalA, earnedA = ctA.total, ctA.earned
		}
		if okB {
			totalB, earnedB = ctB.total, ctB.earned
		}
		if totalA == 0 && totalB == 0 {
			continue
		}
		out[cat] = math.Sqrt(percentage(earnedA, totalA) * percentage(earnedB, totalB))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
