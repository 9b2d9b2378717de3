package hmi

import "testing"

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		v    float64
		frac uint8
		want string
	}{
		{0, 0, "0"},
		{12, 0, "12"},
		{-12, 1, "-12.0"},
		{0.05, 2, "0.05"},
		{-0.125, 2, "-0.13"},
		{1.999, 2, "2.00"},
		{-0.001, 2, "0.00"},
		{275, 1, "275.0"},
	}
	for _, tt := range tests {
		if got := FormatFixed(tt.v, tt.frac); got != tt.want {
			t.Errorf("FormatFixed(%v, %d) = %q, want %q", tt.v, tt.frac, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(3725); got != "01:02:05" {
		t.Errorf("got %q", got)
	}
	if got := formatDuration(0); got != "00:00:00" {
		t.Errorf("got %q", got)
	}
}

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 7: "7", -7: "-7", 1234567: "1234567", -2147483648: "-2147483648"}
	for n, want := range cases {
		if got := itoa(n); got != want {
			t.Errorf("itoa(%d) = %q", n, got)
		}
	}
}

func TestProcessIDString(t *testing.T) {
	if MaxSpeedValue.String() != "MaxSpeedValue" {
		t.Errorf("got %q", MaxSpeedValue.String())
	}
	if ProcessID(200).String() != "ProcessID(200)" {
		t.Errorf("got %q", ProcessID(200).String())
	}
}
