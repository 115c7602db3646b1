package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	got := New(2024, time.February, 30)
	want := New(2024, time.March, 1)
	if got != want {
		t.Errorf("New(2024, 2, 30) = %v want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2025-07-01", New(2025, time.July, 1)},
		{"2025-7-1", New(2025, time.July, 1)},
		{"2019-10-17 00:00:00-04:00", New(2019, time.October, 17)},
		{"2019-10-17T00:00:00Z", New(2019, time.October, 17)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Parse("yesterday"); err == nil {
		t.Errorf("Parse(%q) expected an error", "yesterday")
	}
}

func TestStartOfYear(t *testing.T) {
	d := New(2025, time.October, 17)
	if got, want := d.StartOfYear(), New(2025, time.January, 1); got != want {
		t.Errorf("StartOfYear() = %v want %v", got, want)
	}
	if got, want := d.AddYears(-5), New(2020, time.October, 17); got != want {
		t.Errorf("AddYears(-5) = %v want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2025, 1, 1), New(2025, 1, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is not consistent for %v and %v", a, b)
	}
	if !a.Before(b) || !b.After(a) {
		t.Errorf("Before/After are not consistent for %v and %v", a, b)
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.March, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(data) != `"2025-03-09"` {
		t.Errorf("Marshal() = %s want %q", data, `"2025-03-09"`)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v want %v", got, d)
	}
}

func TestPeriodKey(t *testing.T) {
	d := New(2025, time.September, 8)
	tests := []struct {
		p    Period
		want string
	}{
		{Daily, "2025-09-08"},
		{Monthly, "2025-09"},
		{Yearly, "2025"},
	}
	for _, tt := range tests {
		if got := tt.p.Key(d); got != tt.want {
			t.Errorf("%v.Key(%v) = %q want %q", tt.p, d, got, tt.want)
		}
	}
	if got, want := d.StartOf(Monthly), New(2025, time.September, 1); got != want {
		t.Errorf("StartOf(Monthly) = %v want %v", got, want)
	}
}
