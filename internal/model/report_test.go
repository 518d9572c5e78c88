package model

import "testing"

// TestNewSearchReport tests the defaults of a fresh report.
func TestNewSearchReport(t *testing.T) {
	t.Parallel()

	r := NewSearchReport("abc", "https://example.com", "test")

	if r.Scope != "https://example.com" {
		t.Errorf("expected scope to default to seed, got %q", r.Scope)
	}
	if r.Results == nil {
		t.Error("expected non-nil results slice")
	}
	if r.HasResults() {
		t.Error("expected no results")
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

// TestSearchReportAddFailure tests failure bookkeeping.
func TestSearchReportAddFailure(t *testing.T) {
	t.Parallel()

	r := NewSearchReport("abc", "https://example.com", "test")
	r.AddFailure("https://example.com/a", "boom")
	r.AddFailure("https://example.com/b", "bang")

	if r.FailedCount() != 2 {
		t.Fatalf("expected 2 failures, got %d", r.FailedCount())
	}
	if r.Failures[0].URL != "https://example.com/a" || r.Failures[0].Error != "boom" {
		t.Errorf("unexpected first failure: %+v", r.Failures[0])
	}
}
