package supabase

import (
	"net/url"
	"testing"
	"time"
)

func TestQueryEncodesFilters(t *testing.T) {
	ts := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	q := NewQuery().
		Eq("status", "scheduled").
		LteTime("scheduled_at", ts).
		OrderAsc("scheduled_at").
		Limit(25)

	values, err := url.ParseQuery(q.Encode())
	if err != nil {
		t.Fatalf("encoded query does not parse: %v", err)
	}

	if got := values.Get("status"); got != "eq.scheduled" {
		t.Errorf("status filter = %q, want %q", got, "eq.scheduled")
	}
	if got := values.Get("scheduled_at"); got != "lte.2026-01-15T10:30:00Z" {
		t.Errorf("scheduled_at filter = %q, want %q", got, "lte.2026-01-15T10:30:00Z")
	}
	if got := values.Get("order"); got != "scheduled_at.asc" {
		t.Errorf("order = %q, want %q", got, "scheduled_at.asc")
	}
	if got := values.Get("limit"); got != "25" {
		t.Errorf("limit = %q, want %q", got, "25")
	}
}

func TestQueryEncodesDescendingOrder(t *testing.T) {
	q := NewQuery().Eq("user_id", "u1").OrderDesc("collected_at")

	values, err := url.ParseQuery(q.Encode())
	if err != nil {
		t.Fatalf("encoded query does not parse: %v", err)
	}
	if got := values.Get("order"); got != "collected_at.desc" {
		t.Errorf("order = %q, want %q", got, "collected_at.desc")
	}
	if values.Get("limit") != "" {
		t.Error("limit should be omitted when unset")
	}
}

func TestEmptyQueryEncodesToNothing(t *testing.T) {
	if got := NewQuery().Encode(); got != "" {
		t.Errorf("empty query encoded to %q", got)
	}
}
