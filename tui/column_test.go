package tui

import "testing"

func TestLayoutColumns_SelectedStaysVisible(t *testing.T) {
	headers := []string{"one", "two", "three", "four", "five", "six"}

	widths, first := layoutColumns(headers, 30, 5)
	if len(widths) != len(headers) {
		t.Fatalf("Expected a width per column, got %d", len(widths))
	}

	lo, hi := visibleRange(widths, 30, first)
	if 5 < lo || 5 > hi {
		t.Errorf("Selected column must be visible, window is [%d,%d]", lo, hi)
	}
}

func TestLayoutColumns_NarrowTerminal(t *testing.T) {
	widths, first := layoutColumns([]string{"a", "b"}, 0, 0)
	if widths != nil || first != 0 {
		t.Errorf("Zero width should produce no layout")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("Short values pass through, got %q", got)
	}
	if got := truncate("hello world", 6); got != "hello…" {
		t.Errorf("Expected ellipsis truncation, got %q", got)
	}
	if got := truncate("hi", 0); got != "" {
		t.Errorf("Zero width yields empty, got %q", got)
	}
}
