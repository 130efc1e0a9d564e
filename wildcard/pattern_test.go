package wildcard

import (
	"strings"
	"testing"
)

func TestCompileMatches(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// Literals
		{"com/example/Foo", "com/example/Foo", true},
		{"com/example/Foo", "com/example/Foo2", false},
		{"", "", true},
		{"", "x", false},
		{"<init>", "<init>", true},
		{"a<b", "a<b", true},
		{"<0>", "<0>", true},

		// Single character
		{"Fo?", "Foo", true},
		{"Fo?", "Fo", false},
		{"a?b", "a/b", false},
		{"?", "é", true},

		// Single segment
		{"com/example/*", "com/example/Foo", true},
		{"com/example/*", "com/example/", true},
		{"com/example/*", "com/example/sub/Foo", false},
		{"*Test", "FooTest", true},
		{"*Test", "pkg/FooTest", false},
		{"get*", "getX", true},
		{"B*", "B", true},
		{"B*", "A", false},

		// Cross segment
		{"com/**", "com/example/sub/Foo", true},
		{"**Activity", "com/example/ui/MainActivity", true},
		{"**Activity", "com/example/ui/MainActivity$1", false},
		{"***", "anything/at/all", true},
		{"com/**/Foo", "com/a/b/Foo", true},
		{"com/**/Foo", "com/Foo", false},

		// Mixed
		{"com/*/*", "com/a/B", true},
		{"com/*/*", "com/a/b/C", false},
		{"*_*", "a_b_c", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.input, func(t *testing.T) {
			if got := Compile(tt.pattern).Matches(tt.input, nil); got != tt.want {
				t.Errorf("Compile(%q).Matches(%q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

// TestLiteralPatternsMatchOnlyThemselves checks that a pattern without
// wildcards behaves as string equality.
func TestLiteralPatternsMatchOnlyThemselves(t *testing.T) {
	literals := []string{"", "A", "com/example/Foo", "Foo$Bar", "<init>", "<clinit>", "()V", "(Ljava/lang/String;)I"}
	inputs := append([]string{"a", "com/example/Foo2", "Foo$Ba"}, literals...)

	for _, p := range literals {
		pat := Compile(p)
		if !pat.IsLiteral() {
			t.Fatalf("Compile(%q).IsLiteral() = false", p)
		}
		for _, s := range inputs {
			if got, want := pat.Matches(s, NewManager()), s == p; got != want {
				t.Errorf("Compile(%q).Matches(%q) = %v, want %v", p, s, got, want)
			}
		}
	}
}

func TestCapturesAreShortestFirst(t *testing.T) {
	ix := NewIndexer()
	p := ix.Compile("*_*")
	m := NewManager()

	if !p.Matches("a_b_c", m) {
		t.Fatal("expected match")
	}
	if v, _ := m.Resolve(1); v != "a" {
		t.Errorf("capture 1 = %q, want %q", v, "a")
	}
	if v, _ := m.Resolve(2); v != "b_c" {
		t.Errorf("capture 2 = %q, want %q", v, "b_c")
	}
	if ix.Next() != 3 {
		t.Errorf("Next() = %d, want 3", ix.Next())
	}
}

func TestBackreferenceAcrossPatterns(t *testing.T) {
	ix := NewIndexer()
	class := ix.Compile("com/example/*")
	method := ix.Compile("get<1>")
	m := NewManager()

	if !class.Matches("com/example/Widget", m) {
		t.Fatal("class pattern should match")
	}
	if !method.Matches("getWidget", m) {
		t.Error("backreference should match captured text")
	}
	if method.Matches("getGadget", m) {
		t.Error("backreference should reject different text")
	}

	// Captures are overwritten, not accumulated.
	if !class.Matches("com/example/Gadget", m) {
		t.Fatal("class pattern should match")
	}
	if !method.Matches("getGadget", m) {
		t.Error("backreference should follow the latest capture")
	}
}

func TestBackreferenceUnsetFails(t *testing.T) {
	p := Compile("get<1>")
	if p.Matches("get", NewManager()) {
		t.Error("unset backreference must fail")
	}
	if p.Matches("getX", nil) {
		t.Error("backreference without manager must fail")
	}
}

func TestLocalBackreference(t *testing.T) {
	ix := NewIndexer()
	p := ix.Compile("*/<1>")
	m := NewManager()

	if !p.Matches("foo/foo", m) {
		t.Error("local backreference should match repeated segment")
	}
	if p.Matches("foo/bar", m) {
		t.Error("local backreference should reject different segment")
	}

	// A reference to a later wildcard of the same pattern never resolves.
	ix = NewIndexer()
	fwd := ix.Compile("<1>*")
	m.Capture(1, "x")
	if fwd.Matches("xa", m) {
		t.Error("forward local reference must fail")
	}
}

func TestManyWildcardsOnLongInput(t *testing.T) {
	p := Compile("**a**a**a**a**a**a**b")
	if !p.memo {
		t.Fatal("expected failed positions to be remembered")
	}
	long := strings.Repeat("a", 500)
	if p.Matches(long, nil) {
		t.Error("pattern ending in b should not match a run of a")
	}
	if !p.Matches(long+"b", nil) {
		t.Error("expected match when the run ends in b")
	}

	ix := NewIndexer()
	captured := ix.Compile("*a*a*a*b")
	m := NewManager()
	if !captured.Matches("xaayaab", m) {
		t.Fatal("expected match")
	}
	for i, want := range []string{"x", "", "y", "a"} {
		if v, _ := m.Resolve(i + 1); v != want {
			t.Errorf("capture %d = %q, want %q", i+1, v, want)
		}
	}
}

func TestBackreferencesWithManyWildcards(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		memo    bool
		want    bool
	}{
		{"**<1>**<1>**", "a.x.b.x.c", true, true},
		{"**<1>**<1>**", "a.x.b.y.c", true, false},
		{"*_*_<2>", "a_b_b", false, true},
		{"*_*_<2>", "a_b_c", false, false},
		{"*<1>*<2>", "aab", false, false},
		{"*<1>*<2>", "aabb", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			p := NewIndexer().Compile(tt.pattern)
			if tt.memo {
				p = Compile(tt.pattern)
			}
			if p.memo != tt.memo {
				t.Errorf("memo = %v, want %v", p.memo, tt.memo)
			}
			m := NewManager()
			m.Capture(1, "x")
			if got := p.Matches(tt.input, m); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFailedMatchLeavesManagerUntouched(t *testing.T) {
	ix := NewIndexer()
	p := ix.Compile("com/*/Foo")
	m := NewManager()
	m.Capture(1, "keep")

	if p.Matches("com/a/Bar", m) {
		t.Fatal("unexpected match")
	}
	if v, ok := m.Resolve(1); !ok || v != "keep" {
		t.Errorf("capture 1 = %q, %v; want %q, true", v, ok, "keep")
	}
}

func TestRequiredLiterals(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"com/example/*", []string{"com/example/"}},
		{"**Activity", []string{"Activity"}},
		{"get<1>Value", []string{"get", "Value"}},
		{"**", nil},
	}
	for _, tt := range tests {
		seq := Compile(tt.pattern).RequiredLiterals()
		if seq.Len() != len(tt.want) {
			t.Errorf("RequiredLiterals(%q).Len() = %d, want %d", tt.pattern, seq.Len(), len(tt.want))
			continue
		}
		for i, w := range tt.want {
			if got := string(seq.Get(i).Bytes); got != w {
				t.Errorf("RequiredLiterals(%q)[%d] = %q, want %q", tt.pattern, i, got, w)
			}
		}
	}
}

func TestCaptureRange(t *testing.T) {
	ix := NewIndexer()
	a := ix.Compile("com/*/**")
	b := ix.Compile("literal")
	c := ix.Compile("?x")

	if first, count := a.CaptureRange(); first != 1 || count != 2 {
		t.Errorf("a.CaptureRange() = (%d, %d), want (1, 2)", first, count)
	}
	if first, count := b.CaptureRange(); first != 0 || count != 0 {
		t.Errorf("b.CaptureRange() = (%d, %d), want (0, 0)", first, count)
	}
	if first, count := c.CaptureRange(); first != 3 || count != 1 {
		t.Errorf("c.CaptureRange() = (%d, %d), want (3, 1)", first, count)
	}
	if Compile("a*").IsLiteral() || !Compile("a").IsLiteral() || Compile("<1>").IsLiteral() {
		t.Error("IsLiteral mismatch")
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	if _, ok := m.Resolve(1); ok {
		t.Error("fresh manager should have no captures")
	}
	m.Capture(3, "x")
	m.Capture(0, "ignored")
	if v, ok := m.Resolve(3); !ok || v != "x" {
		t.Errorf("Resolve(3) = %q, %v", v, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	m.Capture(3, "y")
	if v, _ := m.Resolve(3); v != "y" {
		t.Errorf("Resolve(3) after overwrite = %q, want y", v)
	}
	m.Reset()
	if _, ok := m.Resolve(3); ok {
		t.Error("Reset should clear captures")
	}
}

func TestManagerCopyFrom(t *testing.T) {
	src := NewManager()
	src.Capture(1, "a")
	src.Capture(4, "d")

	dst := NewManager()
	dst.Capture(2, "b")
	dst.CopyFrom(src)
	if _, ok := dst.Resolve(2); ok {
		t.Error("CopyFrom should drop captures missing from the source")
	}
	if v, _ := dst.Resolve(4); v != "d" {
		t.Errorf("Resolve(4) = %q, want d", v)
	}

	dst.Capture(1, "changed")
	if v, _ := src.Resolve(1); v != "a" {
		t.Errorf("source capture changed to %q", v)
	}
}
