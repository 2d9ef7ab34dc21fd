package ui

import (
	"testing"
	"time"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		then time.Time
		want string
	}{
		{name: "zero time", then: time.Time{}, want: "-"},
		{name: "seconds", then: now.Add(-42 * time.Second), want: "42s ago"},
		{name: "minutes", then: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "hours", then: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "days", then: now.Add(-49 * time.Hour), want: "2d ago"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FormatTimeAgo(test.then, now)
			if got != test.want {
				t.Fatalf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestFormatTimeAgeShort(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := FormatTimeAgeShort(time.Time{}, now); got != "-" {
		t.Fatalf("expected %q, got %q", "-", got)
	}
	if got := FormatTimeAgeShort(now.Add(-90*time.Second), now); got != "1m" {
		t.Fatalf("expected %q, got %q", "1m", got)
	}
}

func TestFormatDurationShort(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{duration: -time.Second, want: "0s"},
		{duration: 0, want: "0s"},
		{duration: 59 * time.Second, want: "59s"},
		{duration: time.Minute, want: "1m"},
		{duration: 59 * time.Minute, want: "59m"},
		{duration: time.Hour, want: "1h"},
		{duration: 23 * time.Hour, want: "23h"},
		{duration: 24 * time.Hour, want: "1d"},
		{duration: 8 * 24 * time.Hour, want: "8d"},
	}

	for _, test := range tests {
		got := FormatDurationShort(test.duration)
		if got != test.want {
			t.Fatalf("FormatDurationShort(%v): expected %q, got %q", test.duration, test.want, got)
		}
	}
}
