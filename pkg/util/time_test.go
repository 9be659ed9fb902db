package util

import (
	"testing"
	"time"
)

func TestParseTimecode(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"90", 90, true},
		{"45.5", 45.5, true},
		{"1:30", 90, true},
		{"1:01:30", 3690, true},
		{" 2:05 ", 125, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1:xx", 0, false},
		{"1:2:3:4", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseTimecode(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseTimecode(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseTimecode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	d := 1*time.Hour + 2*time.Minute + 3*time.Second + 250*time.Millisecond
	got := FormatDuration(d)
	want := "01:02:03.250"
	if got != want {
		t.Errorf("FormatDuration = %q, want %q", got, want)
	}
}

func TestParseFrameRate(t *testing.T) {
	if got := ParseFrameRate("30/1"); got != 30 {
		t.Errorf("ParseFrameRate(30/1) = %v", got)
	}
	if got := ParseFrameRate("0/0"); got != 0 {
		t.Errorf("ParseFrameRate(0/0) = %v", got)
	}
	if got := ParseFrameRate("30"); got != 0 {
		t.Errorf("ParseFrameRate(30) = %v", got)
	}
}
