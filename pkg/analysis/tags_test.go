package analysis

import (
	"reflect"
	"sort"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name        string
		raw         []interface{}
		wantValid   []string
		wantInvalid []string
	}{
		{
			name:        "clean list",
			raw:         []interface{}{"work", "family", "health"},
			wantValid:   []string{"work", "family", "health"},
			wantInvalid: []string{},
		},
		{
			name:        "trims whitespace",
			raw:         []interface{}{"  work ", "family"},
			wantValid:   []string{"work", "family"},
			wantInvalid: []string{},
		},
		{
			name:        "empty strings dropped silently",
			raw:         []interface{}{"", "   ", "work"},
			wantValid:   []string{"work"},
			wantInvalid: []string{},
		},
		{
			name:        "non-strings rejected",
			raw:         []interface{}{float64(42), true, "work"},
			wantValid:   []string{"work"},
			wantInvalid: []string{"42", "true"},
		},
		{
			name:        "grammar violations rejected",
			raw:         []interface{}{"two words", "ok-tag", "snake_case", "émotion"},
			wantValid:   []string{"ok-tag", "snake_case"},
			wantInvalid: []string{"two words", "émotion"},
		},
		{
			name:        "duplicates collapse",
			raw:         []interface{}{"work", "work", " work"},
			wantValid:   []string{"work"},
			wantInvalid: []string{},
		},
		{
			name:        "case sensitive",
			raw:         []interface{}{"Work", "work"},
			wantValid:   []string{"Work", "work"},
			wantInvalid: []string{},
		},
		{
			name:        "empty input",
			raw:         nil,
			wantValid:   []string{},
			wantInvalid: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.raw)
			if !reflect.DeepEqual(got.Valid, tt.wantValid) {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if !reflect.DeepEqual(got.Invalid, tt.wantInvalid) {
				t.Errorf("Invalid = %v, want %v", got.Invalid, tt.wantInvalid)
			}
		})
	}
}

func TestNormalizeTagsIdempotent(t *testing.T) {
	raw := []interface{}{"work", "family"}
	first := NormalizeTags(raw)

	again := make([]interface{}, len(first.Valid))
	for i, v := range first.Valid {
		again[i] = v
	}
	second := NormalizeTags(again)

	if !reflect.DeepEqual(first.Valid, second.Valid) {
		t.Errorf("normalizing normalized output changed it: %v vs %v", first.Valid, second.Valid)
	}
}

func TestDiffTagNames(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		desired    []string
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:       "no change",
			current:    []string{"a", "b"},
			desired:    []string{"a", "b"},
			wantAdd:    nil,
			wantRemove: nil,
		},
		{
			name:       "all new",
			current:    nil,
			desired:    []string{"a", "b"},
			wantAdd:    []string{"a", "b"},
			wantRemove: nil,
		},
		{
			name:       "all removed",
			current:    []string{"a", "b"},
			desired:    nil,
			wantAdd:    nil,
			wantRemove: []string{"a", "b"},
		},
		{
			name:       "mixed",
			current:    []string{"a", "b"},
			desired:    []string{"b", "c"},
			wantAdd:    []string{"c"},
			wantRemove: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAdd, gotRemove := DiffTagNames(tt.current, tt.desired)
			sort.Strings(gotAdd)
			sort.Strings(gotRemove)
			if !reflect.DeepEqual(gotAdd, tt.wantAdd) {
				t.Errorf("toAdd = %v, want %v", gotAdd, tt.wantAdd)
			}
			if !reflect.DeepEqual(gotRemove, tt.wantRemove) {
				t.Errorf("toRemove = %v, want %v", gotRemove, tt.wantRemove)
			}
		})
	}
}

func TestValidTagName(t *testing.T) {
	valid := []string{"a", "A1", "with_underscore", "with-hyphen", "123"}
	for _, name := range valid {
		if !ValidTagName(name) {
			t.Errorf("ValidTagName(%q) = false, want true", name)
		}
	}
	invalid := []string{"", "two words", "comma,", "émotion", "tab\t"}
	for _, name := range invalid {
		if ValidTagName(name) {
			t.Errorf("ValidTagName(%q) = true, want false", name)
		}
	}
}
