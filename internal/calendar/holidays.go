package calendar

import "time"

// Easter returns Easter Sunday for the given year (Gregorian calendar,
// anonymous computus).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	dayOfMonth := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Holidays returns the Swedish public holidays and de facto non-working
// eves for a year, keyed by ISO date.
func Holidays(year int) map[string]string {
	easter := Easter(year)
	fixed := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}

	h := map[string]string{}
	add := func(t time.Time, name string) {
		h[t.Format(ISOLayout)] = name
	}

	add(fixed(time.January, 1), "Nyårsdagen")
	add(fixed(time.January, 6), "Trettondedag jul")
	add(easter.AddDate(0, 0, -2), "Långfredagen")
	add(easter, "Påskdagen")
	add(easter.AddDate(0, 0, 1), "Annandag påsk")
	add(fixed(time.May, 1), "Första maj")
	add(easter.AddDate(0, 0, 39), "Kristi himmelsfärdsdag")
	add(easter.AddDate(0, 0, 49), "Pingstdagen")
	add(fixed(time.June, 6), "Sveriges nationaldag")
	add(firstWeekdayFrom(fixed(time.June, 19), time.Friday), "Midsommarafton")
	add(firstWeekdayFrom(fixed(time.June, 20), time.Saturday), "Midsommardagen")
	add(firstWeekdayFrom(fixed(time.October, 31), time.Saturday), "Alla helgons dag")
	add(fixed(time.December, 24), "Julafton")
	add(fixed(time.December, 25), "Juldagen")
	add(fixed(time.December, 26), "Annandag jul")
	add(fixed(time.December, 31), "Nyårsafton")
	return h
}

// HolidayName returns the holiday falling on t, if any.
func HolidayName(t time.Time) (string, bool) {
	t = Day(t)
	name, ok := Holidays(t.Year())[t.Format(ISOLayout)]
	return name, ok
}

// IsHoliday reports whether t is a holiday.
func IsHoliday(t time.Time) bool {
	_, ok := HolidayName(t)
	return ok
}

func firstWeekdayFrom(t time.Time, wd time.Weekday) time.Time {
	for t.Weekday() != wd {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
