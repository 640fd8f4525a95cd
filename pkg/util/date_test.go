package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 7, 2, 15, 4, 5, 123, time.UTC)
	d := DateOnly(ts)

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 2, d.Day())
	assert.Equal(t, 0, d.Hour())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 7, 2, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 7, 2, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, Date(2025, 7, 1), MonthStart(2025, 7))
	assert.Equal(t, Date(2025, 7, 31), MonthEnd(2025, 7))
	assert.Equal(t, Date(2024, 2, 29), MonthEnd(2024, 2))
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2025, 2))
}

func TestPrevMonth(t *testing.T) {
	year, month := PrevMonth(2025, 7)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 6, month)

	// 연초는 전년 12월로 넘어간다
	year, month = PrevMonth(2025, 1)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 12, month)
}

func TestMonthIndex(t *testing.T) {
	// 연말을 넘어도 순서가 유지돼야 한다
	assert.Less(t, MonthIndex(2024, 12), MonthIndex(2025, 1))
	assert.Equal(t, MonthIndex(2025, 7), MonthIndexOf(Date(2025, 7, 15)))
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth(1))
	assert.True(t, ValidMonth(12))
	assert.False(t, ValidMonth(0))
	assert.False(t, ValidMonth(13))
}
