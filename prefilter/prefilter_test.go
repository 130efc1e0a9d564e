package prefilter

import (
	"testing"

	"github.com/coregx/keepmatch/literal"
)

func seqOf(words ...string) *literal.Seq {
	s := literal.NewSeq()
	for _, w := range words {
		s.Add(literal.NewLiteral([]byte(w), false))
	}
	return s
}

func TestBuilderSelection(t *testing.T) {
	tests := []struct {
		name   string
		words  []string
		minLen int
		want   string
	}{
		{"empty", nil, 1, "none"},
		{"single", []string{"Activity"}, 1, "substring"},
		{"minimized to single", []string{"Foo", "FooBar"}, 1, "substring"},
		{"many", []string{"Activity", "Fragment", "Service"}, 1, "ahocorasick"},
		{"too short", []string{"Activity", "a"}, 2, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := NewBuilder(seqOf(tt.words...)).WithMinLiteralLen(tt.minLen).Build()
			got := "none"
			switch pf.(type) {
			case *Substring:
				got = "substring"
			case *AhoCorasick:
				got = "ahocorasick"
			}
			if got != tt.want {
				t.Errorf("Build() selected %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMayMatch(t *testing.T) {
	pf := NewBuilder(seqOf("Activity", "Fragment")).Build()
	if pf == nil {
		t.Fatal("expected a prefilter")
	}

	tests := []struct {
		name string
		want bool
	}{
		{"com/example/MainActivity", true},
		{"com/example/ui/ListFragment$1", true},
		{"com/example/Util", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := pf.MayMatch(tt.name); got != tt.want {
			t.Errorf("MayMatch(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	sub := NewSubstring("Util")
	if !sub.MayMatch("com/example/Util") || sub.MayMatch("com/example/Main") {
		t.Error("Substring.MayMatch mismatch")
	}
}

func TestTrackerRetiresIneffectivePrefilter(t *testing.T) {
	tr := NewTrackerWithConfig(NewSubstring("com/"), TrackerConfig{
		CheckInterval: 4,
		MaxPassRate:   0.5,
		WarmupPeriod:  8,
	})

	for i := 0; i < 8; i++ {
		if !tr.MayMatch("com/example/A") {
			t.Fatalf("check %d: expected pass", i)
		}
	}
	if tr.IsActive() {
		t.Fatal("tracker should retire after warmup with 100% pass rate")
	}
	// Retired trackers let everything through.
	if !tr.MayMatch("org/other/B") {
		t.Error("retired tracker must return true")
	}

	tr.Reset()
	if !tr.IsActive() {
		t.Error("Reset should re-enable the tracker")
	}
	if tr.MayMatch("org/other/B") {
		t.Error("active tracker should reject names without the literal")
	}
}

func TestTrackerKeepsSelectivePrefilter(t *testing.T) {
	tr := NewTrackerWithConfig(NewSubstring("Activity"), TrackerConfig{
		CheckInterval: 4,
		MaxPassRate:   0.5,
		WarmupPeriod:  8,
	})
	for i := 0; i < 32; i++ {
		name := "com/example/Util"
		if i%4 == 0 {
			name = "com/example/MainActivity"
		}
		tr.MayMatch(name)
	}
	checks, passes, _, active := tr.Stats()
	if !active {
		t.Error("selective prefilter should stay active")
	}
	if checks != 32 || passes != 8 {
		t.Errorf("Stats() = %d checks, %d passes; want 32, 8", checks, passes)
	}
}

func TestNewTrackerNil(t *testing.T) {
	if NewTracker(nil) != nil {
		t.Error("NewTracker(nil) should return nil")
	}
}
