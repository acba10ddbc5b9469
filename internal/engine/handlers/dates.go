package handlers

import (
	"time"

	"github.com/quicktools-app/quicktools/internal/engine"
)

const dateLayout = "2006-01-02"

// parseDate reads a YYYY-MM-DD calendar date at UTC midnight.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysBetween counts whole days between two UTC-midnight timestamps.
// Unix-second arithmetic: time.Duration saturates at roughly 292 years,
// which would silently clamp wide ranges.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / 86400)
}

// DateDiff computes the signed and absolute day difference of two dates.
type DateDiff struct{}

func NewDateDiff() *DateDiff { return &DateDiff{} }

func (*DateDiff) EngineID() string { return "date.diff" }

func (*DateDiff) Compute(req *engine.Request) engine.Result {
	s1, s2 := req.Inputs.Str("date1"), req.Inputs.Str("date2")
	if s1 == "" || s2 == "" {
		return engine.Errorf("Select date1 and date2.")
	}
	d1, ok1 := parseDate(s1)
	d2, ok2 := parseDate(s2)
	if !ok1 || !ok2 {
		return engine.Errorf("Invalid date.")
	}

	days := daysBetween(d1, d2)
	abs := days
	if abs < 0 {
		abs = -abs
	}
	return engine.FieldsResult(
		engine.F("daysDifference", days),
		engine.F("absoluteDays", abs),
	)
}

// DateAge computes a calendar-aware years/months/days breakdown between
// two dates, borrowing days from the previous month's length and months
// from years. Operands are swapped when reversed so order doesn't matter.
type DateAge struct{}

func NewDateAge() *DateAge { return &DateAge{} }

func (*DateAge) EngineID() string { return "date.age" }

func (*DateAge) Compute(req *engine.Request) engine.Result {
	s1, s2 := req.Inputs.Str("date1"), req.Inputs.Str("date2")
	if s1 == "" || s2 == "" {
		return engine.Errorf("Select date1 and date2.")
	}
	d1, ok1 := parseDate(s1)
	d2, ok2 := parseDate(s2)
	if !ok1 || !ok2 {
		return engine.Errorf("Invalid date.")
	}
	if d1.After(d2) {
		d1, d2 = d2, d1
	}

	years := d2.Year() - d1.Year()
	months := int(d2.Month()) - int(d1.Month())
	days := d2.Day() - d1.Day()

	if days < 0 {
		months--
		days += daysInMonth(d2.Year(), d2.Month()-1)
	}
	if months < 0 {
		years--
		months += 12
	}

	totalDays := daysBetween(d1, d2)
	return engine.FieldsResult(
		engine.F("years", years),
		engine.F("months", months),
		engine.F("days", days),
		engine.F("totalDays", totalDays),
		engine.F("totalWeeks", totalDays/7),
		engine.F("remainingDays", totalDays%7),
	)
}

// daysInMonth returns the length of a month; month may be 0 (December of
// the previous year) thanks to time.Date normalization.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateAddDays adds a (truncated) day count to a calendar date.
type DateAddDays struct{}

func NewDateAddDays() *DateAddDays { return &DateAddDays{} }

func (*DateAddDays) EngineID() string { return "date.addDays" }

func (*DateAddDays) Compute(req *engine.Request) engine.Result {
	s := req.Inputs.Str("date")
	daysF, dok := req.Inputs.Num("days")
	if s == "" || !dok {
		return engine.Errorf("Select date and enter days.")
	}
	d, ok := parseDate(s)
	if !ok {
		return engine.Errorf("Invalid date.")
	}

	result := d.AddDate(0, 0, int(daysF))
	return engine.FieldsResult(engine.F("resultDate", result.Format(dateLayout)))
}

// DateWorkdays counts Mon-Fri days over the closed date interval,
// swapping endpoints if reversed.
type DateWorkdays struct{}

func NewDateWorkdays() *DateWorkdays { return &DateWorkdays{} }

func (*DateWorkdays) EngineID() string { return "date.workdays" }

func (*DateWorkdays) Compute(req *engine.Request) engine.Result {
	s1, s2 := req.Inputs.Str("date1"), req.Inputs.Str("date2")
	if s1 == "" || s2 == "" {
		return engine.Errorf("Select date1 and date2.")
	}
	d1, ok1 := parseDate(s1)
	d2, ok2 := parseDate(s2)
	if !ok1 || !ok2 {
		return engine.Errorf("Invalid date.")
	}
	if d1.After(d2) {
		d1, d2 = d2, d1
	}

	workdays := 0
	for d := d1; !d.After(d2); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			workdays++
		}
	}
	return engine.FieldsResult(engine.F("workdays", workdays))
}

// DateNextBirthday finds the next occurrence of a birth date's month/day
// on or after the asOf date.
type DateNextBirthday struct{}

func NewDateNextBirthday() *DateNextBirthday { return &DateNextBirthday{} }

func (*DateNextBirthday) EngineID() string { return "date.nextBirthday" }

func (*DateNextBirthday) Compute(req *engine.Request) engine.Result {
	dobS, asOfS := req.Inputs.Str("dob"), req.Inputs.Str("asOf")
	if dobS == "" || asOfS == "" {
		return engine.Errorf("Select dob and asOf.")
	}
	dob, ok1 := parseDate(dobS)
	asOf, ok2 := parseDate(asOfS)
	if !ok1 || !ok2 {
		return engine.Errorf("Invalid date.")
	}

	// Feb 29 birthdays normalize to Mar 1 in non-leap years.
	next := time.Date(asOf.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(asOf) {
		next = time.Date(asOf.Year()+1, dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	}

	return engine.FieldsResult(
		engine.F("nextBirthday", next.Format(dateLayout)),
		engine.F("daysUntil", daysBetween(asOf, next)),
	)
}

// DateISOWeek computes the ISO-8601 week number and week-based year.
type DateISOWeek struct{}

func NewDateISOWeek() *DateISOWeek { return &DateISOWeek{} }

func (*DateISOWeek) EngineID() string { return "date.isoWeek" }

func (*DateISOWeek) Compute(req *engine.Request) engine.Result {
	s := req.Inputs.Str("date")
	if s == "" {
		return engine.Errorf("Select date.")
	}
	d, ok := parseDate(s)
	if !ok {
		return engine.Errorf("Invalid date.")
	}

	isoYear, isoWeek := d.ISOWeek()
	return engine.FieldsResult(
		engine.F("isoWeek", isoWeek),
		engine.F("isoYear", isoYear),
	)
}
