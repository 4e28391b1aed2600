package pyenv

import (
	"reflect"
	"testing"
)

func TestParseTag(t *testing.T) {
	tag, err := ParseTag("cp311-cp311-manylinux2014_x86_64")
	if err != nil {
		t.Fatalf("ParseTag: %v", err)
	}
	want := Tag{Interpreter: "cp311", ABI: "cp311", Platform: "manylinux2014_x86_64"}
	if tag != want {
		t.Fatalf("ParseTag = %+v, want %+v", tag, want)
	}
	if tag.String() != "cp311-cp311-manylinux2014_x86_64" {
		t.Fatalf("String = %q", tag.String())
	}

	for _, bad := range []string{"", "cp311", "cp311-cp311", "-cp311-linux", "cp311--linux"} {
		if _, err := ParseTag(bad); err == nil {
			t.Fatalf("ParseTag(%q) succeeded, want error", bad)
		}
	}
}

func TestTagWildcard(t *testing.T) {
	cases := []struct {
		tag  Tag
		want bool
	}{
		{Tag{"cp36", "cp36m", "linux_x86_64"}, false},
		{Tag{"py3", "none", "manylinux1_x86_64"}, true},
		{Tag{"cp36", "abi3", "any"}, true},
		{Tag{"py3", "none", "any"}, true},
	}
	for _, tc := range cases {
		if got := tc.tag.Wildcard(); got != tc.want {
			t.Fatalf("Wildcard(%v) = %v, want %v", tc.tag, got, tc.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	out := "cp36-cp36m-manylinux1_x86_64\n\nnot a tag\ncp36-abi3-linux_x86_64\n"
	got := parseTags(out)
	want := []Tag{
		{Interpreter: "cp36", ABI: "cp36m", Platform: "manylinux1_x86_64"},
		{Interpreter: "cp36", ABI: "abi3", Platform: "linux_x86_64"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseTags = %v, want %v", got, want)
	}
}
