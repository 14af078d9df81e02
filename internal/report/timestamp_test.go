package report_test

import (
	"testing"

	"github.com/CloudCante/Tracking-TOO/internal/report"
)

func TestDisplayAppliesOffsets(t *testing.T) {
	conv := report.NewConverter(8, 4)
	cases := []struct {
		name  string
		input string
		want  string
	}{
		// Net shift is -4h on the wall-clock value; the zone is dropped, not
		// converted, so Z and +08:00 inputs with the same wall clock agree.
		{"zoneless", "2024-03-01T12:00:00", "2024-03-01 08:00:00"},
		{"utc suffix", "2024-03-01T12:00:00Z", "2024-03-01 08:00:00"},
		{"explicit offset", "2024-03-01T12:00:00+08:00", "2024-03-01 08:00:00"},
		{"fractional seconds", "2024-03-01T12:00:00.500Z", "2024-03-01 08:00:00"},
		{"crosses midnight", "2024-03-01T02:30:00", "2024-02-29 22:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := conv.Display(tc.input); got != tc.want {
				t.Fatalf("Display(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDisplayPassesThroughUnparseable(t *testing.T) {
	conv := report.NewConverter(8, 4)
	if got := conv.Display("not a timestamp"); got != "not a timestamp" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestDisplayEmptyStaysEmpty(t *testing.T) {
	conv := report.NewConverter(8, 4)
	if got := conv.Display(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestDisplayZeroOffsets(t *testing.T) {
	conv := report.NewConverter(0, 0)
	if got := conv.Display("2024-03-01T12:00:00Z"); got != "2024-03-01 12:00:00" {
		t.Fatalf("expected identity wall clock, got %q", got)
	}
}
