package matrix

import (
	"strings"
	"testing"
)

func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()
	env := testEnv("3.6")
	foo := NewPlain(env, "foo", "", []Constraint{{Version: "1.0"}, {Version: "2.0"}})
	bar, err := NewDriverKeyed(env, "bar", "bar-cu{driver}", map[string][]Constraint{
		"90":  {{Version: "1.0"}},
		"100": {{Version: "2.0"}, {Version: "2.1"}, {Version: "2.2"}},
	})
	if err != nil {
		t.Fatalf("NewDriverKeyed: %v", err)
	}
	return New(foo, bar)
}

func TestTotalCombinations(t *testing.T) {
	cat := fixtureCatalog(t)
	cases := []struct {
		name   string
		keys   []string
		driver string
		want   int
	}{
		{"no keys", nil, "90", 1},
		{"no matching keys", []string{"nope"}, "90", 1},
		{"one package", []string{"foo"}, "90", 2},
		{"product", []string{"foo", "bar"}, "100", 6},
		{"passthrough does not count", []string{"foo", "nope"}, "90", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cat.TotalCombinations(tc.keys, tc.driver)
			if err != nil {
				t.Fatalf("TotalCombinations: %v", err)
			}
			if got != tc.want {
				t.Fatalf("TotalCombinations = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestInstallStrings(t *testing.T) {
	cat := fixtureCatalog(t)

	got, err := cat.InstallStrings(0, []string{"foo"}, "90")
	if err != nil {
		t.Fatalf("InstallStrings: %v", err)
	}
	if got != "foo==1.0" {
		t.Fatalf("InstallStrings(0) = %q, want foo==1.0", got)
	}

	// out-of-range index resets to the package default, never errors
	got, err = cat.InstallStrings(5, []string{"foo"}, "90")
	if err != nil {
		t.Fatalf("InstallStrings: %v", err)
	}
	if got != "foo==1.0" {
		t.Fatalf("InstallStrings(5) = %q, want foo==1.0", got)
	}

	// same raw index for every package, clamped per package
	got, err = cat.InstallStrings(1, []string{"foo", "bar"}, "100")
	if err != nil {
		t.Fatalf("InstallStrings: %v", err)
	}
	if got != "foo==2.0 bar-cu100==2.1" {
		t.Fatalf("InstallStrings(1) = %q", got)
	}
	got, err = cat.InstallStrings(2, []string{"foo", "bar"}, "100")
	if err != nil {
		t.Fatalf("InstallStrings: %v", err)
	}
	if got != "foo==1.0 bar-cu100==2.2" {
		t.Fatalf("InstallStrings(2) = %q", got)
	}
}

func TestInstallStringsPassthrough(t *testing.T) {
	cat := fixtureCatalog(t)
	got, err := cat.InstallStrings(0, []string{"foo", "baz"}, "90")
	if err != nil {
		t.Fatalf("InstallStrings: %v", err)
	}
	if got != "foo==1.0 baz" {
		t.Fatalf("InstallStrings = %q, want \"foo==1.0 baz\"", got)
	}
}

func TestRemoveString(t *testing.T) {
	cat := fixtureCatalog(t)
	got, err := cat.RemoveString([]string{"foo", "baz"}, "90")
	if err != nil {
		t.Fatalf("RemoveString: %v", err)
	}
	if got != "foo baz" {
		t.Fatalf("RemoveString = %q, want \"foo baz\"", got)
	}

	got, err = cat.RemoveString([]string{"bar"}, "95")
	if err != nil {
		t.Fatalf("RemoveString: %v", err)
	}
	if got != "bar-cu90" {
		t.Fatalf("RemoveString = %q, want bar-cu90", got)
	}
}

func TestAllInstallStrings(t *testing.T) {
	cat := fixtureCatalog(t)
	got, err := cat.AllInstallStrings([]string{"foo", "extra"}, "90")
	if err != nil {
		t.Fatalf("AllInstallStrings: %v", err)
	}
	if got != "foo==1.0 foo==2.0 extra" {
		t.Fatalf("AllInstallStrings = %q", got)
	}
}

func TestList(t *testing.T) {
	cat := fixtureCatalog(t)
	var sb strings.Builder
	if err := cat.List(&sb, "100"); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := "foo:\n\t1.0\n\t2.0\nbar-cu100:\n\t2.0\n\t2.1\n\t2.2\n"
	if sb.String() != want {
		t.Fatalf("List output = %q, want %q", sb.String(), want)
	}
}

func TestQueriesFailFastOnUnresolvableDriver(t *testing.T) {
	cat := fixtureCatalog(t)
	if _, err := cat.TotalCombinations([]string{"bar"}, "80"); err == nil {
		t.Fatal("TotalCombinations(80) succeeded, want driver resolution error")
	}
	if _, err := cat.RemoveString([]string{"bar"}, "80"); err == nil {
		t.Fatal("RemoveString(80) succeeded, want driver resolution error")
	}
}
