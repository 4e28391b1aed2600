package matrix

import (
	"reflect"
	"testing"
)

func TestConstraintApplicable(t *testing.T) {
	cases := []struct {
		name   string
		c      Constraint
		python string
		want   bool
	}{
		{"unbounded", Constraint{Version: "1.0"}, "3.6", true},
		{"unbounded weird python", Constraint{Version: "1.0"}, "not-a-version", true},
		{"below max", Constraint{Version: "1.0", MaxPython: "3.7"}, "3.6", true},
		{"at max", Constraint{Version: "1.0", MaxPython: "3.7"}, "3.7", true},
		{"above max", Constraint{Version: "1.0", MaxPython: "3.7"}, "3.8", false},
		{"at min", Constraint{Version: "1.0", MinPython: "3.6"}, "3.6", true},
		{"below min", Constraint{Version: "1.0", MinPython: "3.6"}, "3.5", false},
		{"inside range", Constraint{Version: "1.0", MinPython: "3.5", MaxPython: "3.8"}, "3.6", true},
		// semantic ordering, not lexical: "3.10" > "3.7"
		{"two-digit minor above max", Constraint{Version: "1.0", MaxPython: "3.7"}, "3.10", false},
		{"two-digit minor above min", Constraint{Version: "1.0", MinPython: "3.7"}, "3.10", true},
		{"unparsable python with bounds", Constraint{Version: "1.0", MaxPython: "3.7"}, "garbage", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Applicable(tc.python); got != tc.want {
				t.Fatalf("Applicable(%q) = %v, want %v", tc.python, got, tc.want)
			}
		})
	}
}

func TestApplicableFilterDropsDisabled(t *testing.T) {
	versions := []Constraint{
		{Version: "1.15.2", MaxPython: "3.7"},
		{Version: "2.1.0", MaxPython: "3.7"},
		{Version: "2.2.0"},
	}
	got := applicable("3.8", versions)
	want := []string{"2.2.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("applicable = %v, want %v", got, want)
	}

	got = applicable("3.6", versions)
	want = []string{"1.15.2", "2.1.0", "2.2.0"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("applicable = %v, want %v", got, want)
	}
}
