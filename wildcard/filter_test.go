package wildcard

import (
	"reflect"
	"testing"
)

func TestFilterFirstMatchWins(t *testing.T) {
	tests := []struct {
		filter []string
		name   string
		want   bool
	}{
		{[]string{"com/example/**"}, "com/example/Foo", true},
		{[]string{"com/example/**"}, "org/other/Foo", false},
		{[]string{"!**Test", "com/example/**"}, "com/example/FooTest", false},
		{[]string{"!**Test", "com/example/**"}, "com/example/Foo", true},
		{[]string{"com/example/**", "!**Test"}, "com/example/FooTest", true},
		{[]string{"!**Test"}, "com/example/Foo", false},
		{[]string{"!**Test"}, "com/example/FooTest", false},
		{[]string{"!META-INF/**", "**"}, "META-INF/MANIFEST.MF", false},
		{[]string{"!META-INF/**", "**"}, "classes.dex", true},
	}

	for _, tt := range tests {
		f := NewFilter(tt.filter)
		if got := f.Accepts(tt.name); got != tt.want {
			t.Errorf("NewFilter(%q).Accepts(%q) = %v, want %v", tt.filter, tt.name, got, tt.want)
		}
	}
}

func TestFilterEmptyIsAbsent(t *testing.T) {
	if f := NewFilter(nil); f != nil {
		t.Error("NewFilter(nil) should be nil")
	}
	if f := NewFilter([]string{}); f != nil {
		t.Error("NewFilter([]) should be nil")
	}
	if f := ParseFilter(" , "); f != nil {
		t.Error("ParseFilter of blanks should be nil")
	}

	var absent *Filter
	if !absent.Accepts("anything") {
		t.Error("absent filter accepts everything")
	}
	if absent.Len() != 0 || absent.Patterns() != nil {
		t.Error("absent filter has no entries")
	}
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter("!**.txt, **.class ,")
	want := []string{"!**.txt", "**.class"}
	if got := f.Patterns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Patterns() = %q, want %q", got, want)
	}
	if !f.Accepts("com/Foo.class") || f.Accepts("notes.txt") || f.Accepts("res/x.png") {
		t.Error("ParseFilter result evaluates incorrectly")
	}
}

// TestFilterPrefilterAgreesWithEntries compares prefiltered evaluation with
// plain first-match evaluation over a mix of names.
func TestFilterPrefilterAgreesWithEntries(t *testing.T) {
	filters := [][]string{
		{"**Activity", "**Fragment", "!**Test"},
		{"!**Test", "com/example/*", "org/**/Service"},
		{"com/a/*", "com/b/*", "com/c/?"},
		{"**", "com/x"},
	}
	names := []string{
		"com/example/MainActivity",
		"com/example/ListFragment",
		"com/example/FooTest",
		"com/example/Util",
		"org/x/y/Service",
		"org/Service",
		"com/a/B",
		"com/c/D",
		"com/c/DD",
		"",
	}

	for _, patterns := range filters {
		f := NewFilter(patterns)
		for _, name := range names {
			if got, want := f.Accepts(name), f.decide(name); got != want {
				t.Errorf("filter %q on %q: prefiltered %v, plain %v", patterns, name, got, want)
			}
		}
	}

	if NewFilter([]string{"**Activity", "**Fragment"}).pf == nil {
		t.Error("two positive literal entries should build a prefilter")
	}
	if NewFilter([]string{"**", "com/x"}).pf != nil {
		t.Error("an entry without literals disables the prefilter")
	}
}
