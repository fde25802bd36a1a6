package format

import (
	"regexp"
	"testing"
)

func TestClockShort(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0"},
		{9, "9"},
		{59, "59"},
		{60, "1:00"},
		{243, "4:03"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3723, "1:02:03"},
		{36000, "10:00:00"},
		{360000, "100:00:00"},
	}
	for _, c := range cases {
		if got := Clock(c.seconds, StyleShort); got != c.want {
			t.Errorf("Clock(%d, StyleShort) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestClockPadded(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00"},
		{9, "09"},
		{59, "59"},
		{243, "04:03"},
		{660, "11:00"},
		{3723, "1:02:03"},
		{36723, "10:12:03"},
	}
	for _, c := range cases {
		if got := Clock(c.seconds, StylePadded); got != c.want {
			t.Errorf("Clock(%d, StylePadded) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestClockFull(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{9, "00:00:09"},
		{243, "00:04:03"},
		{3723, "01:02:03"},
		{86399, "23:59:59"},
		{90000, "25:00:00"},
	}
	for _, c := range cases {
		if got := Clock(c.seconds, StyleFull); got != c.want {
			t.Errorf("Clock(%d, StyleFull) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

// Full style is fixed-width for anything under 100 hours.
func TestClockFullShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)
	for _, s := range []int{0, 1, 59, 60, 61, 3599, 3600, 3661, 86399, 359999} {
		got := Clock(s, StyleFull)
		if !shape.MatchString(got) {
			t.Errorf("Clock(%d, StyleFull) = %q, want HH:MM:SS shape", s, got)
		}
	}
}

func TestClockClampsNegative(t *testing.T) {
	for _, style := range []Style{StyleShort, StylePadded, StyleFull} {
		for _, s := range []int{-1, -59, -3600} {
			if got, want := Clock(s, style), Clock(0, style); got != want {
				t.Errorf("Clock(%d, %v) = %q, want %q", s, style, got, want)
			}
		}
	}
}

func TestParseStyle(t *testing.T) {
	for n := 0; n <= 2; n++ {
		style, ok := ParseStyle(n)
		if !ok || int(style) != n {
			t.Errorf("ParseStyle(%d) = %v, %v", n, style, ok)
		}
	}
	if _, ok := ParseStyle(3); ok {
		t.Error("ParseStyle(3) should be rejected")
	}
	if _, ok := ParseStyle(-1); ok {
		t.Error("ParseStyle(-1) should be rejected")
	}
}
