package service

import (
	"fmt"
	"sort"

	"github.com/embermatch/api/internal/bank"
	"github.com/embermatch/api/internal/model"
)

// Per-category phrasing for explanation entries. Keyed on whether the
// factor helped or hurt the score.
var positivePhrases = map[model.QuestionCategory]string{
	model.CategoryPersonality: "You land close together on %q",
	model.CategoryAttachment:  "Your attachment needs line up on %q",
	model.CategoryDealbreaker: "No dealbreaker conflict on %q",
	model.CategoryValues:      "You share common ground on %q",
	model.CategoryLifestyle:   "Your lifestyles fit on %q",
	model.CategoryRedFlag:     "Nothing concerning around %q",
}

var negativePhrases = map[model.QuestionCategory]string{
	model.CategoryPersonality: "You pull in different directions on %q",
	model.CategoryAttachment:  "Your attachment needs clash on %q",
	model.CategoryDealbreaker: "A dealbreaker conflict on %q",
	model.CategoryValues:      "Your values diverge on %q",
	model.CategoryLifestyle:   "Your lifestyles clash on %q",
	model.CategoryRedFlag:     "A potential red flag around %q",
}

// GenerateExplanation renders the strongest positive and negative
// factors of a computed match into human-readable entries. Each list
// holds at most topN entries, strongest first; ties between equal
// contributions break on ascending question id, then direction, so the
// output is deterministic. topN of zero or less means the default.
func GenerateExplanation(b *bank.Bank, result *model.CompatibilityResult, topN int) *model.Explanation {
	if topN <= 0 {
		topN = model.DefaultExplanationFactors
	}

	var positives, negatives []model.Factor
	for _, f := range result.Factors {
		switch {
		case f.Contribution > 0:
			positives = append(positives, f)
		case f.Contribution < 0:
			negatives = append(negatives, f)
		}
	}

	sortFactors(positives, func(a, b model.Factor) bool { return a.Contribution > b.Contribution })
	sortFactors(negatives, func(a, b model.Factor) bool { return a.Contribution < b.Contribution })

	return &model.Explanation{
		Positives: render(b, positives, topN, positivePhrases),
		Negatives: render(b, negatives, topN, negativePhrases),
	}
}

// sortFactors orders by the given strength comparison, with ties broken
// on question id then direction.
func sortFactors(factors []model.Factor, stronger func(a, b model.Factor) bool) {
	sort.SliceStable(factors, func(i, j int) bool {
		a, b := factors[i], factors[j]
		if a.Contribution != b.Contribution {
			return stronger(a, b)
		}
		if a.QuestionID != b.QuestionID {
			return a.QuestionID < b.QuestionID
		}
		return a.Direction == model.DirectionAToB && b.Direction == model.DirectionBToA
	})
}

func render(b *bank.Bank, factors []model.Factor, topN int, phrases map[model.QuestionCategory]string) []model.ExplanationFactor {
	if len(factors) > topN {
		factors = factors[:topN]
	}
	out := make([]model.ExplanationFactor, 0, len(factors))
	for _, f := range factors {
		// A question can vanish from the bank between scoring and
		// rendering after a reload; fall back to its id.
		text := f.QuestionID
		if q, ok := b.ByID(f.QuestionID); ok {
			text = q.Text
		}
		out = append(out, model.ExplanationFactor{
			QuestionID:   f.QuestionID,
			Direction:    f.Direction,
			Category:     f.Category,
			Contribution: f.Contribution,
			Text:         fmt.Sprintf(phrases[f.Category], text),
		})
	}
	return out
}
