package check

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPredicateEval(t *testing.T) {
	active := map[string]bool{"A": true, "B": true}

	tests := []struct {
		name string
		pred *Predicate
		want bool
	}{
		{"active hit", &Predicate{Active: "A"}, true},
		{"active miss", &Predicate{Active: "C"}, false},
		{"inactive hit", &Predicate{Inactive: "C"}, true},
		{"inactive miss", &Predicate{Inactive: "A"}, false},
		{"not", &Predicate{Not: &Predicate{Active: "C"}}, true},
		{"all true", &Predicate{All: []*Predicate{{Active: "A"}, {Active: "B"}}}, true},
		{"all short", &Predicate{All: []*Predicate{{Active: "A"}, {Active: "C"}}}, false},
		{"any true", &Predicate{Any: []*Predicate{{Active: "C"}, {Active: "B"}}}, true},
		{"any false", &Predicate{Any: []*Predicate{{Active: "C"}, {Active: "D"}}}, false},
		{"empty is false", &Predicate{}, false},
	}
	for _, tt := range tests {
		if got := tt.pred.Eval(active); got != tt.want {
			t.Errorf("%s: Eval = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPredicateValidate(t *testing.T) {
	good := &Predicate{All: []*Predicate{{Active: "A"}, {Not: &Predicate{Active: "B"}}}}
	if err := good.Validate(); err != nil {
		t.Errorf("valid predicate rejected: %v", err)
	}

	bad := []*Predicate{
		{},
		{Active: "A", Inactive: "B"},
		{All: []*Predicate{{}}},
		{Not: &Predicate{Active: "A", Not: &Predicate{Active: "B"}}},
	}
	for i, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("bad predicate %d accepted", i)
		}
	}
}

func TestPredicateYAMLShorthand(t *testing.T) {
	var p Predicate
	if err := yaml.Unmarshal([]byte(`FEATURE_ELEVATION_CONTROL`), &p); err != nil {
		t.Fatalf("scalar shorthand failed: %v", err)
	}
	if p.Active != "FEATURE_ELEVATION_CONTROL" {
		t.Errorf("shorthand gave %+v", p)
	}

	var q Predicate
	doc := `
any:
  - FEATURE_GPS
  - active: FEATURE_RTC_DS1307
`
	if err := yaml.Unmarshal([]byte(doc), &q); err != nil {
		t.Fatalf("mapping form failed: %v", err)
	}
	if len(q.Any) != 2 || q.Any[0].Active != "FEATURE_GPS" {
		t.Errorf("mapping form gave %+v", q)
	}
}

func TestPredicateFeatures(t *testing.T) {
	p := &Predicate{All: []*Predicate{
		{Active: "A"},
		{Any: []*Predicate{{Inactive: "B"}, {Active: "C"}}},
	}}
	got := p.Features()
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("Features = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Features[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
