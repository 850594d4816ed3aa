package bank

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/embermatch/api/internal/model"
)

// Definition is the raw JSON shape of one question in a bank file.
// Definitions are validated and converted into model.Question values
// during Load; a bank never holds a partially valid definition.
type Definition struct {
	ID                string                 `json:"id"`
	Text              string                 `json:"text"`
	Category          string                 `json:"category"`
	Subcategory       string                 `json:"subcategory,omitempty"`
	Type              string                 `json:"type"`
	Scale             *model.NumericScale    `json:"scale,omitempty"`
	Choices           []model.Choice         `json:"choices,omitempty"`
	Unacceptable      *model.UnacceptableSet `json:"unacceptable,omitempty"`
	DefaultImportance string                 `json:"default_importance,omitempty"`
	DisplayOrder      int                    `json:"display_order,omitempty"`
}

// File is the top-level JSON document of a question bank.
type File struct {
	Questions []Definition `json:"questions"`
}

// Issue is one structural problem found while validating definitions.
type Issue struct {
	Index      int
	QuestionID string
	Message    string
}

// LoadError rejects an entire bank load. It aggregates every issue found
// so an administrator can fix the file in one pass.
type LoadError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if len(e.Issues) == 0 {
		return "question bank load failed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "question bank load failed with %d issue(s): ", len(e.Issues))
	for i, issue := range e.Issues {
		if i > 0 {
			b.WriteString("; ")
		}
		if issue.QuestionID != "" {
			fmt.Fprintf(&b, "%s: %s", issue.QuestionID, issue.Message)
		} else {
			fmt.Fprintf(&b, "definition %d: %s", issue.Index, issue.Message)
		}
	}
	return b.String()
}

// Bank is an immutable catalog of questions. Construct one through Load;
// never mutate a Bank after construction, concurrent readers depend on it.
type Bank struct {
	byID       map[string]*model.Question
	byCategory map[model.QuestionCategory][]*model.Question
	selection  []*model.Question
}

// Load validates a full set of definitions and builds a Bank. The load
// is all-or-nothing: any structural issue rejects the whole set.
func Load(defs []Definition) (*Bank, error) {
	var issues []Issue
	report := func(i int, id, format string, args ...interface{}) {
		issues = append(issues, Issue{Index: i, QuestionID: id, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]struct{}, len(defs))
	questions := make([]*model.Question, 0, len(defs))

	for i, def := range defs {
		if def.ID == "" {
			report(i, "", "missing id")
			continue
		}
		if _, dup := seen[def.ID]; dup {
			report(i, def.ID, "duplicate id")
			continue
		}
		seen[def.ID] = struct{}{}

		q, err := buildQuestion(def)
		if err != nil {
			report(i, def.ID, "%v", err)
			continue
		}
		questions = append(questions, q)
	}

	if len(issues) > 0 {
		return nil, &LoadError{Issues: issues}
	}

	return index(questions), nil
}

// LoadJSON parses a bank file from r and loads it.
func LoadJSON(r io.Reader) (*Bank, error) {
	var file File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return nil, &LoadError{Issues: []Issue{{Message: fmt.Sprintf("malformed JSON: %v", err)}}}
	}
	return Load(file.Questions)
}

// LoadFile reads and loads a bank file from disk.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadJSON(f)
}

// ReadDefinitions parses a bank file into raw definitions without
// validating them. Used by reload paths that hand the definitions to a
// Catalog, which validates before swapping.
func ReadDefinitions(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer func() { _ = f.Close() }()

	var file File
	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return file.Questions, nil
}

func buildQuestion(def Definition) (*model.Question, error) {
	category, err := model.ParseCategory(def.Category)
	if err != nil {
		return nil, err
	}

	qtype, err := model.ParseQuestionType(def.Type)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(def.Text) == "" {
		return nil, fmt.Errorf("missing text")
	}

	switch qtype {
	case model.TypeNumericScale:
		if def.Scale == nil {
			return nil, fmt.Errorf("numeric scale question requires a scale")
		}
		if def.Scale.Min >= def.Scale.Max {
			return nil, fmt.Errorf("malformed scale: min %v must be below max %v", def.Scale.Min, def.Scale.Max)
		}
		if len(def.Choices) > 0 {
			return nil, fmt.Errorf("numeric scale question cannot define choices")
		}
	case model.TypeSingleChoice, model.TypeMultiChoice:
		if def.Scale != nil {
			return nil, fmt.Errorf("choice question cannot define a numeric scale")
		}
		if len(def.Choices) < 2 {
			return nil, fmt.Errorf("choice question requires at least 2 choices")
		}
		choiceSeen := make(map[string]struct{}, len(def.Choices))
		for _, c := range def.Choices {
			if c.ID == "" {
				return nil, fmt.Errorf("choice with empty id")
			}
			if _, dup := choiceSeen[c.ID]; dup {
				return nil, fmt.Errorf("duplicate choice id %q", c.ID)
			}
			choiceSeen[c.ID] = struct{}{}
		}
	case model.TypeFreeText:
		if def.Scale != nil || len(def.Choices) > 0 {
			return nil, fmt.Errorf("free text question cannot define a scale or choices")
		}
	}

	defaultImportance := model.ImportanceMedium
	if def.DefaultImportance != "" {
		defaultImportance, err = model.ParseImportance(def.DefaultImportance)
		if err != nil {
			return nil, err
		}
	}

	q := &model.Question{
		ID:                def.ID,
		Text:              def.Text,
		Category:          category,
		Subcategory:       def.Subcategory,
		Type:              qtype,
		Scale:             def.Scale,
		Choices:           def.Choices,
		DefaultImportance: defaultImportance,
		DisplayOrder:      def.DisplayOrder,
	}

	if def.Unacceptable != nil {
		if err := validateUnacceptable(q, def.Unacceptable); err != nil {
			return nil, err
		}
		q.Unacceptable = def.Unacceptable
	}

	return q, nil
}

func validateUnacceptable(q *model.Question, set *model.UnacceptableSet) error {
	switch q.Type {
	case model.TypeNumericScale:
		if len(set.ChoiceIDs) > 0 {
			return fmt.Errorf("unacceptable set on a numeric question must be a sub-range, not choices")
		}
		if set.Range == nil {
			return fmt.Errorf("unacceptable set on a numeric question requires a range")
		}
		if set.Range.Min > set.Range.Max {
			return fmt.Errorf("malformed unacceptable range")
		}
		if !q.Scale.Contains(set.Range.Min) || !q.Scale.Contains(set.Range.Max) {
			return fmt.Errorf("unacceptable range falls outside the question scale")
		}
	case model.TypeSingleChoice, model.TypeMultiChoice:
		if set.Range != nil {
			return fmt.Errorf("unacceptable set on a choice question must list choices, not a range")
		}
		if len(set.ChoiceIDs) == 0 {
			return fmt.Errorf("unacceptable set on a choice question requires choices")
		}
		for _, id := range set.ChoiceIDs {
			if !q.HasChoice(id) {
				return fmt.Errorf("unacceptable choice %q is not one of the question's choices", id)
			}
		}
	default:
		return fmt.Errorf("unacceptable set is not allowed on %s questions", q.Type)
	}
	return nil
}

func index(questions []*model.Question) *Bank {
	b := &Bank{
		byID:       make(map[string]*model.Question, len(questions)),
		byCategory: make(map[model.QuestionCategory][]*model.Question),
	}

	for _, q := range questions {
		b.byID[q.ID] = q
		b.byCategory[q.Category] = append(b.byCategory[q.Category], q)
	}

	// Listing order within a category: display order, then id.
	for _, list := range b.byCategory {
		sort.Slice(list, func(i, j int) bool {
			if list[i].DisplayOrder != list[j].DisplayOrder {
				return list[i].DisplayOrder < list[j].DisplayOrder
			}
			return list[i].ID < list[j].ID
		})
	}

	// Selection order: fixed category priority, then ascending id.
	// This must stay deterministic; onboarding depends on repeated calls
	// returning the same next question for an unchanged response set.
	b.selection = make([]*model.Question, 0, len(questions))
	for _, cat := range model.CategoryPriority() {
		catQuestions := append([]*model.Question(nil), b.byCategory[cat]...)
		sort.Slice(catQuestions, func(i, j int) bool {
			return catQuestions[i].ID < catQuestions[j].ID
		})
		b.selection = append(b.selection, catQuestions...)
	}

	return b
}

// ByID returns a question by id.
func (b *Bank) ByID(id string) (*model.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// ByCategory returns the questions of a category in listing order.
// Callers must not mutate the returned slice.
func (b *Bank) ByCategory(category model.QuestionCategory) []*model.Question {
	return b.byCategory[category]
}

// SelectionOrder returns all questions in deterministic selection order:
// category priority first, ascending question id within each category.
// Callers must not mutate the returned slice.
func (b *Bank) SelectionOrder() []*model.Question {
	return b.selection
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.byID)
}

// CountByCategory returns the number of questions per category.
func (b *Bank) CountByCategory() map[model.QuestionCategory]int {
	counts := make(map[model.QuestionCategory]int, len(b.byCategory))
	for cat, list := range b.byCategory {
		counts[cat] = len(list)
	}
	return counts
}
