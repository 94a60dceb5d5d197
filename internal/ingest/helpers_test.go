package ingest

import "testing"

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	if got := cleanText("  a \n\t b   c "); got != "a b c" {
		t.Fatalf("expected collapsed text, got %q", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10); got != "short" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	got := TruncateText("abcdefghij", 8)
	if got != "abcde..." {
		t.Fatalf("expected ellipsis truncation, got %q", got)
	}
}

func TestSanitizeText_StripsMarkup(t *testing.T) {
	if got := sanitizeText("a <b>bold</b> claim"); got != "a bold claim" {
		t.Fatalf("expected markup stripped, got %q", got)
	}
}

func TestAppendUnique(t *testing.T) {
	list := appendUnique(nil, "A")
	list = appendUnique(list, "a")
	list = appendUnique(list, " ")
	list = appendUnique(list, "b")
	if len(list) != 2 || list[0] != "A" || list[1] != "b" {
		t.Fatalf("expected [A b], got %v", list)
	}
}
