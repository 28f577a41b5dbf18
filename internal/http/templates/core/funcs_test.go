package core

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{int64(-1234567), "-1,234,567"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		if got := formatNumberTemplate(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSyncStatusClass(t *testing.T) {
	if got := syncStatusClass("COMPLETED"); got != "badge-success" {
		t.Errorf("syncStatusClass(COMPLETED) = %q", got)
	}
	if got := syncStatusClass("failed"); got != "badge-danger" {
		t.Errorf("syncStatusClass(failed) = %q", got)
	}
	if got := syncStatusClass("unknown"); got != "badge-light" {
		t.Errorf("syncStatusClass(unknown) = %q", got)
	}
}

func TestRelativeTimeNever(t *testing.T) {
	if got := createRelativeTimeFunc()((*time.Time)(nil)); got != "Never" {
		t.Errorf("relativeTime(nil) = %q, want Never", got)
	}
}
