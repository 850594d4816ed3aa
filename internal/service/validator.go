package service

import (
	"strings"
	"unicode/utf8"

	"github.com/embermatch/api/internal/model"
)

// ValidateAnswer checks a raw answer against its question's type and
// bounds and normalizes it into a canonical Response. The returned
// response carries no user id or timestamp; the caller fills those in at
// submission time. Pure function, no side effects.
func ValidateAnswer(q *model.Question, raw model.RawAnswer) (*model.Response, *model.ValidationError) {
	importance := q.DefaultImportance
	if raw.Importance != "" {
		parsed, err := model.ParseImportance(raw.Importance)
		if err != nil {
			return nil, model.NewValidationError(q.ID, model.ValidationInvalidImportance,
				"importance %q is not one of irrelevant, low, medium, high, mandatory", raw.Importance)
		}
		importance = parsed
	}

	resp := &model.Response{
		QuestionID: q.ID,
		Category:   q.Category,
		Type:       q.Type,
		Importance: importance,
	}

	switch q.Type {
	case model.TypeNumericScale:
		if raw.Numeric == nil {
			return nil, model.NewValidationError(q.ID, model.ValidationTypeMismatch,
				"numeric value required for a %s question", q.Type)
		}
		if !q.Scale.Contains(*raw.Numeric) {
			return nil, model.NewValidationError(q.ID, model.ValidationOutOfRange,
				"value %v outside [%v, %v]", *raw.Numeric, q.Scale.Min, q.Scale.Max)
		}
		v := *raw.Numeric
		resp.Numeric = &v

	case model.TypeSingleChoice:
		if raw.ChoiceID == "" {
			return nil, model.NewValidationError(q.ID, model.ValidationTypeMismatch,
				"choice_id required for a %s question", q.Type)
		}
		if len(raw.ChoiceIDs) > 0 {
			return nil, model.NewValidationError(q.ID, model.ValidationTypeMismatch,
				"single choice question takes choice_id, not choice_ids")
		}
		if !q.HasChoice(raw.ChoiceID) {
			return nil, model.NewValidationError(q.ID, model.ValidationUnknownChoice,
				"choice %q is not defined on this question", raw.ChoiceID)
		}
		resp.ChoiceIDs = []string{raw.ChoiceID}

	case model.TypeMultiChoice:
		if len(raw.ChoiceIDs) == 0 {
			return nil, model.NewValidationError(q.ID, model.ValidationEmptyChoices,
				"at least one choice is required")
		}
		seen := make(map[string]struct{}, len(raw.ChoiceIDs))
		for _, id := range raw.ChoiceIDs {
			if !q.HasChoice(id) {
				return nil, model.NewValidationError(q.ID, model.ValidationUnknownChoice,
					"choice %q is not defined on this question", id)
			}
			if _, dup := seen[id]; dup {
				return nil, model.NewValidationError(q.ID, model.ValidationDuplicateChoice,
					"choice %q selected more than once", id)
			}
			seen[id] = struct{}{}
		}
		resp.ChoiceIDs = append([]string(nil), raw.ChoiceIDs...)

	case model.TypeFreeText:
		if strings.TrimSpace(raw.Text) == "" {
			return nil, model.NewValidationError(q.ID, model.ValidationTextEmpty,
				"text answer must not be blank")
		}
		if n := utf8.RuneCountInString(raw.Text); n > model.MaxFreeTextLen {
			return nil, model.NewValidationError(q.ID, model.ValidationTextTooLong,
				"text answer is %d characters, maximum is %d", n, model.MaxFreeTextLen)
		}
		resp.Text = raw.Text
	}

	return resp, nil
}
