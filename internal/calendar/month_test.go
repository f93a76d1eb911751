package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack/internal/models"
)

func TestBuildMonthThirtyDaysStartingWednesday(t *testing.T) {
	// ноябрь 2023: 30 дней, 1-е — среда
	m := BuildMonth(time.Date(2023, 11, 17, 0, 0, 0, 0, time.UTC), nil, nil)
	assert.Equal(t, 3, m.LeadingBlanks)
	require.Len(t, m.Days, 30)
	assert.Equal(t, "2023-11-01", m.Days[0].ISO)
	assert.Equal(t, "2023-11-30", m.Days[29].ISO)
	for i := 1; i < len(m.Days); i++ {
		assert.True(t, m.Days[i].Date.After(m.Days[i-1].Date))
	}
}

func TestBuildMonthLeapFebruary(t *testing.T) {
	m := BuildMonth(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	assert.Len(t, m.Days, 29)
	assert.Equal(t, 4, m.LeadingBlanks) // 1 февраля 2024 — четверг
}

func TestBuildMonthBuckets(t *testing.T) {
	events := []models.CalendarEvent{
		{Title: "standup", EventDate: models.MustDate("2024-02-05")},
		{Title: "audit", EventDate: models.MustDate("2024-02-05")},
		{Title: "march", EventDate: models.MustDate("2024-03-05")},
	}
	invoices := []models.Invoice{
		{InvoiceNumber: "INV-1", DueDate: models.MustDate("2024-02-29")},
		{InvoiceNumber: "INV-2", DueDate: models.MustDate("2024-01-31")},
	}

	m := BuildMonth(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), events, invoices)

	d, ok := m.Day("2024-02-05")
	require.True(t, ok)
	require.Len(t, d.Events, 2)
	assert.Equal(t, "standup", d.Events[0].Title)
	assert.Equal(t, "audit", d.Events[1].Title)
	assert.True(t, d.HasItems())

	d, ok = m.Day("2024-02-29")
	require.True(t, ok)
	require.Len(t, d.Invoices, 1)
	assert.Equal(t, "INV-1", d.Invoices[0].InvoiceNumber)

	d, _ = m.Day("2024-02-06")
	assert.False(t, d.HasItems())

	_, ok = m.Day("2024-03-05")
	assert.False(t, ok)
}

func TestMarkTodayAndNavigation(t *testing.T) {
	m := BuildMonth(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	m.MarkToday(time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC))
	today := 0
	for _, d := range m.Days {
		if d.IsToday {
			today++
			assert.Equal(t, "2024-01-15", d.ISO)
		}
	}
	assert.Equal(t, 1, today)
	assert.Equal(t, "2023-12", m.PrevKey())
	assert.Equal(t, "2024-02", m.NextKey())
	assert.Equal(t, "January 2024", m.Title())
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2024-07", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.July, got.Month())

	got, err = ParseMonth("", time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseMonth("07/2024", time.Time{})
	assert.Error(t, err)
}
