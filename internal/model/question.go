package model

import (
	"encoding/json"
	"fmt"
)

// QuestionCategory classifies a question for grouping, progress tracking,
// and per-category match subscores.
type QuestionCategory string

const (
	CategoryPersonality QuestionCategory = "PERSONALITY"
	CategoryAttachment  QuestionCategory = "ATTACHMENT"
	CategoryDealbreaker QuestionCategory = "DEALBREAKER"
	CategoryValues      QuestionCategory = "VALUES"
	CategoryLifestyle   QuestionCategory = "LIFESTYLE"
	CategoryRedFlag     QuestionCategory = "RED_FLAG"
)

// CategoryPriority is the fixed ordering used for onboarding question
// selection and category listings. Question selection depends on this
// order being stable, so it is a function returning a fresh slice rather
// than a shared package variable.
func CategoryPriority() []QuestionCategory {
	return []QuestionCategory{
		CategoryPersonality,
		CategoryAttachment,
		CategoryDealbreaker,
		CategoryValues,
		CategoryLifestyle,
		CategoryRedFlag,
	}
}

// ParseCategory converts a raw string into a QuestionCategory.
func ParseCategory(s string) (QuestionCategory, error) {
	c := QuestionCategory(s)
	switch c {
	case CategoryPersonality, CategoryAttachment, CategoryDealbreaker,
		CategoryValues, CategoryLifestyle, CategoryRedFlag:
		return c, nil
	}
	return "", fmt.Errorf("unknown question category %q", s)
}

// CategoryInfo provides display information for a category.
type CategoryInfo struct {
	ID    QuestionCategory `json:"id"`
	Label string           `json:"label"`
}

// GetQuestionCategories returns all question categories with display info,
// in selection-priority order.
func GetQuestionCategories() []CategoryInfo {
	return []CategoryInfo{
		{ID: CategoryPersonality, Label: "Personality"},
		{ID: CategoryAttachment, Label: "Attachment Style"},
		{ID: CategoryDealbreaker, Label: "Dealbreakers"},
		{ID: CategoryValues, Label: "Values"},
		{ID: CategoryLifestyle, Label: "Lifestyle"},
		{ID: CategoryRedFlag, Label: "Red Flags"},
	}
}

// QuestionType describes how a question is answered.
type QuestionType string

const (
	TypeNumericScale QuestionType = "NUMERIC_SCALE"
	TypeSingleChoice QuestionType = "SINGLE_CHOICE"
	TypeMultiChoice  QuestionType = "MULTI_CHOICE"
	TypeFreeText     QuestionType = "FREE_TEXT"
)

// ParseQuestionType converts a raw string into a QuestionType.
func ParseQuestionType(s string) (QuestionType, error) {
	t := QuestionType(s)
	switch t {
	case TypeNumericScale, TypeSingleChoice, TypeMultiChoice, TypeFreeText:
		return t, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Importance is the ordinal weight a user assigns to one of their own
// answers. Higher levels scale how much that question affects matching.
type Importance int

const (
	ImportanceIrrelevant Importance = iota
	ImportanceLow
	ImportanceMedium
	ImportanceHigh
	ImportanceMandatory
)

var importanceNames = map[Importance]string{
	ImportanceIrrelevant: "irrelevant",
	ImportanceLow:        "low",
	ImportanceMedium:     "medium",
	ImportanceHigh:       "high",
	ImportanceMandatory:  "mandatory",
}

// Fixed weights for the match calculation. The spread is deliberately
// steep so that a "mandatory" question dominates a handful of "medium"
// ones. These constants must not change between releases, or historical
// scores stop being reproducible.
var importanceWeights = map[Importance]float64{
	ImportanceIrrelevant: 0,
	ImportanceLow:        1,
	ImportanceMedium:     10,
	ImportanceHigh:       50,
	ImportanceMandatory:  250,
}

// ParseImportance converts a raw string into an Importance level.
func ParseImportance(s string) (Importance, error) {
	for level, name := range importanceNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown importance level %q", s)
}

// String returns the wire name of the importance level.
func (i Importance) String() string {
	if name, ok := importanceNames[i]; ok {
		return name
	}
	return fmt.Sprintf("importance(%d)", int(i))
}

// Weight returns the numeric match weight for the importance level.
func (i Importance) Weight() float64 {
	return importanceWeights[i]
}

// Valid reports whether the value is one of the five defined levels.
func (i Importance) Valid() bool {
	_, ok := importanceNames[i]
	return ok
}

// MarshalJSON encodes the importance as its wire name.
func (i Importance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes the importance from its wire name.
func (i *Importance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseImportance(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Choice is one selectable answer option on a choice question.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NumericScale bounds a NUMERIC_SCALE question, inclusive on both ends.
// It also expresses an unacceptable sub-range on dealbreaker questions.
type NumericScale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the scale, inclusive.
func (s NumericScale) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// UnacceptableSet defines the answers the asker finds disqualifying.
// Only consulted when the asker's importance for the question is mandatory.
// Exactly one of ChoiceIDs or Range is set, matching the question type.
type UnacceptableSet struct {
	ChoiceIDs []string      `json:"choice_ids,omitempty"`
	Range     *NumericScale `json:"range,omitempty"`
}

// Question is one entry in the immutable question bank.
type Question struct {
	ID                string           `json:"id"`
	Text              string           `json:"text"`
	Category          QuestionCategory `json:"category"`
	Subcategory       string           `json:"subcategory,omitempty"`
	Type              QuestionType     `json:"type"`
	Scale             *NumericScale    `json:"scale,omitempty"`
	Choices           []Choice         `json:"choices,omitempty"`
	Unacceptable      *UnacceptableSet `json:"unacceptable,omitempty"`
	DefaultImportance Importance       `json:"default_importance"`
	DisplayOrder      int              `json:"display_order"`
}

// HasChoice reports whether the question defines the given choice id.
func (q *Question) HasChoice(id string) bool {
	for _, c := range q.Choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ChoiceIndex returns the position of a choice id in the ordered choice
// list, or -1 if absent. Choice proximity scoring depends on this order.
func (q *Question) ChoiceIndex(id string) int {
	for i, c := range q.Choices {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Free-text answer bounds.
const (
	MinFreeTextLen = 1
	MaxFreeTextLen = 2000
)

// Batch question limits. A request without an explicit limit gets
// DefaultQuestionBatch; anything above MaxQuestionBatch is clamped.
const (
	DefaultQuestionBatch = 10
	MaxQuestionBatch     = 50
)
