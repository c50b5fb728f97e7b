package utils

import (
	"testing"
	"time"
)

func TestGenerateUTM(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := GenerateUTM("telegram", now); got != "?utm_source=telegram_jan26" {
		t.Errorf("GenerateUTM = %q", got)
	}
	if got := GenerateUTM("linkedin", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)); got != "?utm_source=linkedin_dec25" {
		t.Errorf("GenerateUTM = %q", got)
	}
}

func TestWithTrackingSuffix(t *testing.T) {
	got := WithTrackingSuffix("telegram", "Hello", "?utm_source=telegram_jan26")
	want := "Hello\n\nvyud.online?utm_source=telegram_jan26"
	if got != want {
		t.Errorf("WithTrackingSuffix = %q, want %q", got, want)
	}

	got = WithTrackingSuffix("linkedin", "Hello", "?utm_source=linkedin_jan26")
	want = "Hello\n\nvyud.tech?utm_source=linkedin_jan26"
	if got != want {
		t.Errorf("WithTrackingSuffix = %q, want %q", got, want)
	}
}

func TestWithTrackingSuffixNoTag(t *testing.T) {
	if got := WithTrackingSuffix("telegram", "Hello", ""); got != "Hello" {
		t.Errorf("content without a tag must pass through untouched, got %q", got)
	}
}
