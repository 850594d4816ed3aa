package model

import (
	"encoding/json"
	"testing"
)

func TestParseCategory_AllKnown(t *testing.T) {
	t.Parallel()

	for _, c := range CategoryPriority() {
		parsed, err := ParseCategory(string(c))
		if err != nil {
			t.Errorf("ParseCategory(%q) returned error: %v", c, err)
		}
		if parsed != c {
			t.Errorf("ParseCategory(%q) = %q", c, parsed)
		}
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := ParseCategory("ASTROLOGY"); err == nil {
		t.Error("expected error for unknown category")
	}
	if _, err := ParseCategory("values"); err == nil {
		t.Error("category names are case-sensitive, lowercase should be rejected")
	}
}

func TestParseQuestionType_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := ParseQuestionType("ESSAY"); err == nil {
		t.Error("expected error for unknown question type")
	}
}

func TestImportance_Weights(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level  Importance
		weight float64
	}{
		{ImportanceIrrelevant, 0},
		{ImportanceLow, 1},
		{ImportanceMedium, 10},
		{ImportanceHigh, 50},
		{ImportanceMandatory, 250},
	}

	for _, tc := range cases {
		if got := tc.level.Weight(); got != tc.weight {
			t.Errorf("%s weight = %v, want %v", tc.level, got, tc.weight)
		}
	}
}

func TestImportance_Ordinal(t *testing.T) {
	t.Parallel()

	if !(ImportanceIrrelevant < ImportanceLow &&
		ImportanceLow < ImportanceMedium &&
		ImportanceMedium < ImportanceHigh &&
		ImportanceHigh < ImportanceMandatory) {
		t.Error("importance levels must be strictly ordered")
	}
}

func TestImportance_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	for _, level := range []Importance{
		ImportanceIrrelevant, ImportanceLow, ImportanceMedium, ImportanceHigh, ImportanceMandatory,
	} {
		data, err := json.Marshal(level)
		if err != nil {
			t.Fatalf("marshal %s: %v", level, err)
		}

		var decoded Importance
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if decoded != level {
			t.Errorf("round trip changed %s to %s", level, decoded)
		}
	}
}

func TestImportance_UnmarshalRejectsUnknown(t *testing.T) {
	t.Parallel()

	var i Importance
	if err := json.Unmarshal([]byte(`"critical"`), &i); err == nil {
		t.Error("expected error for unknown importance name")
	}
}

func TestNumericScale_Contains(t *testing.T) {
	t.Parallel()

	s := NumericScale{Min: 1, Max: 5}

	for _, v := range []float64{1, 3, 5} {
		if !s.Contains(v) {
			t.Errorf("scale [1,5] should contain %v", v)
		}
	}
	for _, v := range []float64{0.99, 5.01, -1} {
		if s.Contains(v) {
			t.Errorf("scale [1,5] should not contain %v", v)
		}
	}
}

func TestQuestion_ChoiceIndex(t *testing.T) {
	t.Parallel()

	q := &Question{
		Choices: []Choice{{ID: "never"}, {ID: "sometimes"}, {ID: "often"}},
	}

	if idx := q.ChoiceIndex("sometimes"); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := q.ChoiceIndex("always"); idx != -1 {
		t.Errorf("expected -1 for unknown choice, got %d", idx)
	}
	if !q.HasChoice("often") {
		t.Error("expected HasChoice(often) to be true")
	}
	if q.HasChoice("always") {
		t.Error("expected HasChoice(always) to be false")
	}
}
