package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 8, 24, hour, min, 0, 0, time.UTC)
}

func TestParseLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	got, err := ParseLocalDate("2026-08-24", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, loc), got)

	_, err = ParseLocalDate("24.08.2026", loc)
	assert.Error(t, err)
	_, err = ParseLocalDate("2026-13-01", loc)
	assert.Error(t, err)
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))) // понедельник
	assert.False(t, IsWeekend(time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))) // пятница
	assert.True(t, IsWeekend(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)))  // суббота
	assert.True(t, IsWeekend(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))  // воскресенье
}

func TestMinutesBetween(t *testing.T) {
	assert.Equal(t, 90, MinutesBetween(ts(10, 0), ts(11, 30)))
	assert.Equal(t, 0, MinutesBetween(ts(10, 0), ts(10, 0)))
	// Отрицательный интервал не уходит в минус
	assert.Equal(t, 0, MinutesBetween(ts(11, 0), ts(10, 0)))
	// Секунды округляются до ближайшей минуты
	assert.Equal(t, 1, MinutesBetween(ts(10, 0), ts(10, 0).Add(40*time.Second)))
	assert.Equal(t, 0, MinutesBetween(ts(10, 0), ts(10, 0).Add(20*time.Second)))
}

func TestOverlaps(t *testing.T) {
	// Частичное пересечение
	assert.True(t, Overlaps(ts(10, 0), ts(11, 0), ts(10, 30), ts(11, 30)))
	// Вложенный интервал
	assert.True(t, Overlaps(ts(10, 0), ts(12, 0), ts(10, 30), ts(11, 0)))
	// Граничащие интервалы не пересекаются
	assert.False(t, Overlaps(ts(10, 0), ts(11, 0), ts(11, 0), ts(12, 0)))
	assert.False(t, Overlaps(ts(11, 0), ts(12, 0), ts(10, 0), ts(11, 0)))
	// Непересекающиеся
	assert.False(t, Overlaps(ts(10, 0), ts(11, 0), ts(12, 0), ts(13, 0)))
}

func TestOverlapsWindow(t *testing.T) {
	// Окно 17:00-19:00 в минутах суток
	winStart, winEnd := 17*60, 19*60

	assert.True(t, OverlapsWindow(ts(18, 0), ts(19, 0), winStart, winEnd))
	assert.True(t, OverlapsWindow(ts(16, 30), ts(17, 30), winStart, winEnd))
	// Касание границы пересечением не считается
	assert.False(t, OverlapsWindow(ts(19, 0), ts(20, 0), winStart, winEnd))
	assert.False(t, OverlapsWindow(ts(15, 0), ts(17, 0), winStart, winEnd))
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay(ts(0, 0)))
	assert.Equal(t, 570, MinutesOfDay(ts(9, 30)))
	assert.Equal(t, 1439, MinutesOfDay(ts(23, 59)))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(ts(0, 0), ts(23, 59)))
	assert.False(t, SameDay(ts(23, 59), ts(23, 59).Add(time.Minute)))
}

func TestAddMinutes(t *testing.T) {
	assert.Equal(t, ts(10, 45), AddMinutes(ts(10, 0), 45))
	assert.Equal(t, ts(9, 30), AddMinutes(ts(10, 0), -30))
}
