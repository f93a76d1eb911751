// Package calendar раскладывает события и счета по дням месяца.
package calendar

import (
	"time"

	"worktrack/internal/models"
)

const monthLayout = "2006-01"

type Day struct {
	Date     time.Time
	ISO      string
	Events   []models.CalendarEvent
	Invoices []models.Invoice
	IsToday  bool
}

func (d Day) HasItems() bool { return len(d.Events) > 0 || len(d.Invoices) > 0 }

type Month struct {
	Start         time.Time
	Days          []Day
	LeadingBlanks int
}

// BuildMonth строит дни месяца по порядку и пустые ячейки перед первым днём
// (0 = воскресенье). Совпадение по дате — точное сравнение yyyy-MM-dd.
func BuildMonth(month time.Time, events []models.CalendarEvent, invoices []models.Invoice) Month {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := start.AddDate(0, 1, 0)

	evByDate := make(map[string][]models.CalendarEvent)
	for _, e := range events {
		k := e.DateISO()
		evByDate[k] = append(evByDate[k], e)
	}
	invByDate := make(map[string][]models.Invoice)
	for _, inv := range invoices {
		k := inv.DueISO()
		invByDate[k] = append(invByDate[k], inv)
	}

	m := Month{Start: start, LeadingBlanks: int(start.Weekday())}
	for d := start; d.Before(next); d = d.AddDate(0, 0, 1) {
		iso := d.Format(models.ISODate)
		m.Days = append(m.Days, Day{
			Date:     d,
			ISO:      iso,
			Events:   evByDate[iso],
			Invoices: invByDate[iso],
		})
	}
	return m
}

// MarkToday отмечает день, совпадающий с календарной датой now.
func (m *Month) MarkToday(now time.Time) {
	iso := now.Format(models.ISODate)
	for i := range m.Days {
		m.Days[i].IsToday = m.Days[i].ISO == iso
	}
}

// Day возвращает день по yyyy-MM-dd, если он в этом месяце.
func (m Month) Day(iso string) (Day, bool) {
	for _, d := range m.Days {
		if d.ISO == iso {
			return d, true
		}
	}
	return Day{}, false
}

func (m Month) Title() string { return m.Start.Format("January 2006") }
func (m Month) Key() string   { return m.Start.Format(monthLayout) }
func (m Month) PrevKey() string {
	return m.Start.AddDate(0, -1, 0).Format(monthLayout)
}
func (m Month) NextKey() string {
	return m.Start.AddDate(0, 1, 0).Format(monthLayout)
}

// ParseMonth разбирает "yyyy-MM"; пустая строка — месяц fallback.
func ParseMonth(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(fallback.Year(), fallback.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(monthLayout, s)
}
