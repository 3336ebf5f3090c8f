package format_test

import (
	"strings"
	"testing"

	"cogcompress/internal/format"
)

func TestASCII_RepositoryTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("Repository", "File", "Valid")
	tb.Row("demo", "demo-core-logic.json", format.BoolMark(true))
	tb.Row("broken", "broken-core-logic.json", format.BoolMark(false))
	out := tb.String()

	for _, want := range []string{"REPOSITORY", "demo-core-logic.json", "✓", "✗"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	// ASCII uses box-drawing characters from StyleLight
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_TraceTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Trace", "Repository")
	tb.Row("2024-12-18T15-30-45.123Z.json", "demo")
	out := tb.String()

	if !strings.Contains(out, "| Trace") {
		t.Errorf("expected markdown header with '| Trace':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
	if !strings.Contains(out, "2024-12-18T15-30-45.123Z.json") {
		t.Errorf("expected trace name in output:\n%s", out)
	}
}

func TestSameData_DualFormat(t *testing.T) {
	build := func(m format.Mode) string {
		tb := format.NewTable(m)
		tb.Header("A", "B")
		tb.Row("x", "y")
		return tb.String()
	}

	ascii := build(format.ASCII)
	md := build(format.Markdown)

	if ascii == md {
		t.Error("ASCII and Markdown output should differ")
	}
	for _, out := range []string{ascii, md} {
		if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
			t.Errorf("expected data in output:\n%s", out)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   format.Mode
		wantOK bool
	}{
		{"table", format.ASCII, true},
		{"markdown", format.Markdown, true},
		{"plain", format.ASCII, false},
		{"", format.ASCII, false},
	}
	for _, tc := range tests {
		got, ok := format.ParseMode(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"ab", 3, "ab"},
		{"abcdef", 3, "abc"},
	}
	for _, tc := range tests {
		got := format.Truncate(tc.in, tc.maxLen)
		if got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func TestBoolMark(t *testing.T) {
	if format.BoolMark(true) != "✓" {
		t.Error("BoolMark(true) should be ✓")
	}
	if format.BoolMark(false) != "✗" {
		t.Error("BoolMark(false) should be ✗")
	}
}
