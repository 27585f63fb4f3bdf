package auditor

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	cut := newCutoffs(now, 90)

	cases := []struct {
		name    string
		ageDays int
		want    Classification
	}{
		{"fresh key", 0, ClassOK},
		{"well under notify age", 85, ClassOK},
		{"last compliant day", 89, ClassOK},
		{"exactly notify age", 90, ClassNotify},
		{"inside grace period", 92, ClassNotify},
		{"last day of grace period", 96, ClassNotify},
		{"exactly deactivate age", 97, ClassDeactivate},
		{"past deactivate age", 98, ClassDeactivate},
		{"long forgotten", 400, ClassDeactivate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created := now.AddDate(0, 0, -tc.ageDays)
			if got := classify(created, cut); got != tc.want {
				t.Fatalf("expected %s for %d day old key, got %s", tc.want, tc.ageDays, got)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	cut := newCutoffs(now, 30)

	rank := map[Classification]int{
		ClassOK:         0,
		ClassNotify:     1,
		ClassDeactivate: 2,
	}

	prev := 0
	for age := 0; age <= 60; age++ {
		created := now.AddDate(0, 0, -age)
		r := rank[classify(created, cut)]
		if r < prev {
			t.Fatalf("classification moved backward at age %d", age)
		}
		prev = r
	}
}

func TestClassifyStable(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	cut := newCutoffs(now, 30)
	created := now.AddDate(0, 0, -31)

	first := classify(created, cut)
	for i := 0; i < 3; i++ {
		if got := classify(created, cut); got != first {
			t.Fatalf("expected stable classification, got %s then %s", first, got)
		}
	}
}

func TestNewCutoffs(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	cut := newCutoffs(now, 30)

	if !cut.deactivate.Before(cut.notify) {
		t.Fatalf("expected deactivate cutoff before notify cutoff")
	}
	if want := now.AddDate(0, 0, -30); !cut.notify.Equal(want) {
		t.Fatalf("expected notify cutoff %v, got %v", want, cut.notify)
	}
	if want := now.AddDate(0, 0, -37); !cut.deactivate.Equal(want) {
		t.Fatalf("expected deactivate cutoff %v, got %v", want, cut.deactivate)
	}
}

func TestDeactivateOn(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	cut := newCutoffs(now, 90)

	// A key created exactly on the deactivate cutoff crosses the
	// threshold at the run's reference time.
	if got := deactivateOn(cut.deactivate, 90); !got.Equal(now) {
		t.Fatalf("expected deadline %v, got %v", now, got)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	if got := daysUntil(now, now.AddDate(0, 0, 7)); got != 7 {
		t.Fatalf("expected 7 days, got %d", got)
	}
	if got := daysUntil(now, now.Add(12*time.Hour)); got != 1 {
		t.Fatalf("expected partial day to round up to 1, got %d", got)
	}
	if got := daysUntil(now, now); got != 0 {
		t.Fatalf("expected 0 days at the deadline, got %d", got)
	}
	if got := daysUntil(now, now.AddDate(0, 0, -3)); got != 0 {
		t.Fatalf("expected 0 days past the deadline, got %d", got)
	}
}

func TestAgeInDays(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	if got := ageInDays(now, now.AddDate(0, 0, -92)); got != 92 {
		t.Fatalf("expected age 92, got %d", got)
	}
	if got := ageInDays(now, now.Add(-36*time.Hour)); got != 1 {
		t.Fatalf("expected partial day to truncate to 1, got %d", got)
	}
	if got := ageInDays(now, now.Add(time.Hour)); got != 0 {
		t.Fatalf("expected 0 for a future creation date, got %d", got)
	}
}
