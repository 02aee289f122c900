package league

import "testing"

func intPtr(v int) *int { return &v }

func TestDayName(t *testing.T) {
	tests := []struct {
		name string
		day  *int
		want string
	}{
		{name: "unset day", day: nil, want: "Day TBD"},
		{name: "sunday", day: intPtr(0), want: "Sunday"},
		{name: "saturday", day: intPtr(6), want: "Saturday"},
		{name: "out of range", day: intPtr(7), want: "Day TBD"},
		{name: "negative", day: intPtr(-1), want: "Day TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := League{DayOfWeek: tt.day}
			if got := l.DayName(); got != tt.want {
				t.Fatalf("DayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScheduleLabel(t *testing.T) {
	l := League{StartDate: "2026-01-15", EndDate: "2026-03-20", Year: "2026"}
	if got := l.ScheduleLabel(); got != "Jan 15 - Mar 20, 2026" {
		t.Fatalf("ScheduleLabel() = %q", got)
	}

	l.HideDay = true
	if got := l.ScheduleLabel(); got != "January 2026" {
		t.Fatalf("ScheduleLabel() with hidden day = %q", got)
	}

	l = League{StartDate: "not-a-date", Year: "2026"}
	if got := l.ScheduleLabel(); got != "2026" {
		t.Fatalf("ScheduleLabel() with bad start date = %q", got)
	}
}

func TestSpotsRemaining(t *testing.T) {
	l := League{MaxTeams: 10}
	if got := l.SpotsRemaining(4); got != 6 {
		t.Fatalf("SpotsRemaining(4) = %d, want 6", got)
	}
	if got := l.SpotsRemaining(12); got != 0 {
		t.Fatalf("SpotsRemaining(12) = %d, want 0", got)
	}
}

func TestSpotsText(t *testing.T) {
	if got := SpotsText(0); got != "Full" {
		t.Fatalf("SpotsText(0) = %q", got)
	}
	if got := SpotsText(1); got != "1 spot left" {
		t.Fatalf("SpotsText(1) = %q", got)
	}
	if got := SpotsText(5); got != "5 spots left" {
		t.Fatalf("SpotsText(5) = %q", got)
	}
}
