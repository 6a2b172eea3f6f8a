package recurrence

import (
	"strings"
	"time"
)

// Frequency define la cadencia de repetición soportada.
// @Enum none, daily, weekly, monthly, yearly
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ParseFrequency normaliza el texto de entrada ("" cuenta como none).
func ParseFrequency(s string) (Frequency, bool) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case "", FrequencyNone:
		return FrequencyNone, true
	case FrequencyDaily:
		return FrequencyDaily, true
	case FrequencyWeekly:
		return FrequencyWeekly, true
	case FrequencyMonthly:
		return FrequencyMonthly, true
	case FrequencyYearly:
		return FrequencyYearly, true
	default:
		return FrequencyNone, false
	}
}

// Info describe el calendario de repetición adjunto a una actividad o recordatorio.
type Info struct {
	Frequency Frequency
	Interval  int // cada N unidades de Frequency; siempre >= 1 tras Normalize
	NextAt    *time.Time
	EndAt     *time.Time
}

// Normalize ajusta intervalos no positivos a 1 y frecuencias desconocidas a none.
func (i Info) Normalize() Info {
	if f, ok := ParseFrequency(string(i.Frequency)); !ok || f == FrequencyNone {
		i.Frequency = FrequencyNone
	}
	if i.Interval < 1 {
		i.Interval = 1
	}
	return i
}

// Repeats indica si la info describe una repetición real.
func (i Info) Repeats() bool {
	f, ok := ParseFrequency(string(i.Frequency))
	return ok && f != FrequencyNone
}

// NextAfter devuelve la primera ocurrencia estrictamente posterior a t,
// partiendo de from. ok=false si no repite o si la ocurrencia cae
// después de EndAt.
func (i Info) NextAfter(from, t time.Time) (time.Time, bool) {
	n := i.Normalize()
	if n.Frequency == FrequencyNone {
		return time.Time{}, false
	}

	next := from
	for !next.After(t) {
		switch n.Frequency {
		case FrequencyDaily:
			next = next.AddDate(0, 0, n.Interval)
		case FrequencyWeekly:
			next = next.AddDate(0, 0, 7*n.Interval)
		case FrequencyMonthly:
			next = next.AddDate(0, n.Interval, 0)
		case FrequencyYearly:
			next = next.AddDate(n.Interval, 0, 0)
		}
	}

	if n.EndAt != nil && next.After(*n.EndAt) {
		return time.Time{}, false
	}
	return next, true
}
