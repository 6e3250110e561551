package timecode

import (
	"math"
	"strings"
	"testing"
)

func TestSRTTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{125.4, "00:02:05,400"},
		{5, "00:00:05,000"},
		{12, "00:00:12,000"},
		{3661.001, "01:01:01,001"},
		{59.9996, "00:01:00,000"},
		{0.0004, "00:00:00,000"},
		{0.0005, "00:00:00,001"},
		{-3, "00:00:00,000"},
		{math.NaN(), "00:00:00,000"},
		{360000, "100:00:00,000"},
	}
	for _, tt := range tests {
		if got := SRT(tt.in); got != tt.want {
			t.Errorf("SRT(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVTTDiffersOnlyBySeparator(t *testing.T) {
	for _, in := range []float64{0, 1.5, 125.4, 3599.999, -1} {
		srt := SRT(in)
		vtt := VTT(in)
		if len(srt) != len(vtt) {
			t.Fatalf("length mismatch for %v: %q vs %q", in, srt, vtt)
		}
		for i := range srt {
			if srt[i] == vtt[i] {
				continue
			}
			if srt[i] != ',' || vtt[i] != '.' {
				t.Fatalf("unexpected difference for %v at %d: %q vs %q", in, i, srt, vtt)
			}
		}
	}
	if got := VTT(125.4); got != "00:02:05.400" {
		t.Fatalf("VTT(125.4) = %q", got)
	}
	if got := VTT(-2); got != "00:00:00.000" {
		t.Fatalf("VTT(-2) = %q", got)
	}
}

func TestMillisRoundsInsteadOfTruncating(t *testing.T) {
	// 0.1+0.2 is 0.30000000000000004.
	if got := Millis(0.1 + 0.2); got != 300 {
		t.Fatalf("Millis(0.1+0.2) = %d", got)
	}
	if got := Millis(2.9999); got != 3000 {
		t.Fatalf("Millis(2.9999) = %d", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, value := range []string{"00:02:05,400", "00:02:05.400", "01:01:01,001"} {
		secs, err := Parse(value)
		if err != nil {
			t.Fatalf("Parse(%q): %v", value, err)
		}
		if SRT(secs) != commaSeparated(value) {
			t.Fatalf("round trip mismatch for %q: %q", value, SRT(secs))
		}
	}
	for _, bad := range []string{"", "00:00:00", "00:61:00,000", "aa:00:00,000", "00:00,000"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func commaSeparated(value string) string {
	out := []byte(value)
	for i := range out {
		if out[i] == '.' {
			out[i] = ','
		}
	}
	return string(out)
}

func TestRangeOverlapsIsStrictHalfOpen(t *testing.T) {
	r := Range{Start: 10, End: 20}
	tests := []struct {
		t0, t1 float64
		want   bool
	}{
		{5, 10, false},
		{10, 15, true},
		{15, 20, true},
		{20, 25, false},
		{5, 25, true},
		{9.999, 10.001, true},
		{0, 5, false},
	}
	for _, tt := range tests {
		if got := r.Overlaps(tt.t0, tt.t1); got != tt.want {
			t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.t0, tt.t1, got, tt.want)
		}
	}
	if r.Duration() != 10 {
		t.Fatalf("unexpected duration %v", r.Duration())
	}
}

func TestMillisSaturatesForHugeValues(t *testing.T) {
	for _, seconds := range []float64{1e16, 1e300, math.Inf(1)} {
		if got := Millis(seconds); got != MaxMillis {
			t.Fatalf("Millis(%g) = %d, want %d", seconds, got, int64(MaxMillis))
		}
	}
	if got := SRT(1e16); strings.Contains(got, "-") {
		t.Fatalf("SRT(1e16) = %q, want a non-negative timestamp", got)
	}
}
