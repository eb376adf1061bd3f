package timegrid

import (
	"fmt"
	"time"
)

// DateFormat формат календарной даты в API и конфигурации
const DateFormat = "2006-01-02"

// ParseLocalDate парсит дату "YYYY-MM-DD" в начало суток в локальном времени площадки
func ParseLocalDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %v", date, err)
	}
	return t, nil
}

// AddMinutes сдвигает момент времени на заданное число минут
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// IsWeekend возвращает true для субботы и воскресенья
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MinutesOfDay возвращает минуту суток (0-1439) для момента времени
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesBetween возвращает длительность интервала в минутах,
// округлённую до ближайшей минуты, не меньше нуля
func MinutesBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int((d + 30*time.Second) / time.Minute)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1,e1) и [s2,e2).
// Граничащие интервалы (e1 == s2) пересечением не считаются.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// OverlapsWindow проверяет пересечение интервала [startAt,endAt) с окном
// внутри суток, заданным минутами [windowStartMin,windowEndMin).
// Окна через полночь не поддерживаются и конфигурацией не создаются.
func OverlapsWindow(startAt, endAt time.Time, windowStartMin, windowEndMin int) bool {
	startMin := MinutesOfDay(startAt)
	endMin := MinutesOfDay(endAt)
	return startMin < windowEndMin && endMin > windowStartMin
}

// SameDay проверяет, что два момента относятся к одним календарным суткам
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
