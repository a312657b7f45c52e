package market

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

const (
	DefaultMIC = "xnys"
	fallbackTZ = "America/New_York"
)

// Exchange pairs a trading venue's timezone with its holiday calendar.
type Exchange struct {
	MIC      string
	Location *time.Location
	cal      *calendar.Calendar
}

// LoadExchange resolves an ISO 10383 MIC. If the calendar is unknown the exchange
// falls back to US Eastern time with a Monday to Friday week.
func LoadExchange(mic string) (*Exchange, error) {
	mic = strings.ToLower(strings.TrimSpace(mic))
	if mic == "" {
		mic = DefaultMIC
	}

	if cal := calendar.GetCalendar(mic); cal != nil && cal.Loc != nil {
		return &Exchange{MIC: mic, Location: cal.Loc, cal: cal}, nil
	}

	log.Printf("Warning: No calendar for MIC '%s'. Using %s with a Mon-Fri week.", mic, fallbackTZ)
	loc, err := time.LoadLocation(fallbackTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone name '%s': %w", fallbackTZ, err)
	}
	return &Exchange{MIC: mic, Location: loc}, nil
}

// IsTradingDay reports whether the exchange-local date of t is a business day.
func (e *Exchange) IsTradingDay(t time.Time) bool {
	t = t.In(e.Location)
	if e.cal == nil {
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return e.cal.IsBusinessDay(t)
}
