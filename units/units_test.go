package units

import (
	"testing"
	"time"
)

func TestParseDurationSuffixes(t *testing.T) {
	cases := map[string]time.Duration{
		"10ms":  10 * time.Millisecond,
		"5s":    5 * time.Second,
		"2m":    2 * time.Minute,
		"1h":    time.Hour,
		"2days": 48 * time.Hour,
		"500":   500 * time.Millisecond,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		if err != nil {
			t.Fatalf("ParseDuration(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDuration(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDurationInvalid(t *testing.T) {
	if _, err := ParseDuration("10 furlongs"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("3weeks")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if p.Count != 3 || p.Unit != Weeks {
		t.Fatalf("got %+v", p)
	}
}

func TestParseSizeSIvsIEC(t *testing.T) {
	si, err := ParseSize("1kB")
	if err != nil {
		t.Fatalf("ParseSize(SI): %v", err)
	}
	if si != 1000 {
		t.Fatalf("got %d", si)
	}
	iec, err := ParseSize("1KiB")
	if err != nil {
		t.Fatalf("ParseSize(IEC): %v", err)
	}
	if iec != 1024 {
		t.Fatalf("got %d", iec)
	}
}

func TestParseSizeBareBytes(t *testing.T) {
	n, err := ParseSize("512")
	if err != nil {
		t.Fatalf("ParseSize: %v", err)
	}
	if n != 512 {
		t.Fatalf("got %d", n)
	}
}

func TestParseSizeFullSIAndIECLadder(t *testing.T) {
	cases := map[string]int64{
		"5EB":  5 * 1_000_000_000_000_000_000,
		"1EiB": 1 << 60,
	}
	for in, want := range cases {
		got, err := ParseSize(in)
		if err != nil {
			t.Fatalf("ParseSize(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSize(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSizeOverflowRejected(t *testing.T) {
	if _, err := ParseSize("5YB"); err == nil {
		t.Fatalf("expected overflow error for 5YB")
	}
	if _, err := ParseSize("1YiB"); err == nil {
		t.Fatalf("expected overflow error for 1YiB")
	}
}
