package market

import (
	"testing"
	"time"
)

func TestLoadExchange_DefaultsToNYSE(t *testing.T) {
	ex, err := LoadExchange("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.MIC != DefaultMIC {
		t.Errorf("MIC = %q, want %q", ex.MIC, DefaultMIC)
	}

	// 14:30 UTC in October is 10:30 in New York (EDT)
	ts := time.Date(2025, time.October, 14, 14, 30, 0, 0, time.UTC).In(ex.Location)
	if ts.Hour() != 10 || ts.Minute() != 30 {
		t.Errorf("expected 10:30 exchange time, got %s", ts.Format("15:04"))
	}
}

func TestExchange_IsTradingDay(t *testing.T) {
	ex, err := LoadExchange("XNYS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"tuesday", time.Date(2025, time.October, 14, 12, 0, 0, 0, ex.Location), true},
		{"saturday", time.Date(2025, time.October, 18, 12, 0, 0, 0, ex.Location), false},
		{"sunday", time.Date(2025, time.October, 19, 12, 0, 0, 0, ex.Location), false},
		{"christmas", time.Date(2025, time.December, 25, 12, 0, 0, 0, ex.Location), false},
	}
	for _, tt := range tests {
		if got := ex.IsTradingDay(tt.date); got != tt.want {
			t.Errorf("%s: IsTradingDay = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestExchange_FallbackWeekdays(t *testing.T) {
	ex, err := LoadExchange("not-a-mic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Location.String() != fallbackTZ {
		t.Errorf("Location = %s, want %s", ex.Location, fallbackTZ)
	}
	if ex.IsTradingDay(time.Date(2025, time.October, 18, 12, 0, 0, 0, ex.Location)) {
		t.Error("saturday should not be a trading day")
	}
	if !ex.IsTradingDay(time.Date(2025, time.October, 17, 12, 0, 0, 0, ex.Location)) {
		t.Error("friday should be a trading day")
	}
}
