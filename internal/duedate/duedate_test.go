package duedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		due    time.Time
		bucket Bucket
		delta  int
		label  string
	}{
		{day(2024, 5, 9), Overdue, -1, "1d overdue"},
		{day(2024, 4, 30), Overdue, -10, "10d overdue"},
		{day(2024, 5, 10), DueSoon, 0, "0d left"},
		{day(2024, 5, 15), DueSoon, 5, "5d left"},
		{day(2024, 5, 16), OnTrack, 6, "6d left"},
	}
	for _, tc := range cases {
		got := Classify(tc.due, now, "pending")
		assert.Equal(t, tc.bucket, got.Bucket, tc.due)
		assert.Equal(t, tc.delta, got.DaysDelta, tc.due)
		assert.Equal(t, tc.label, got.Label())
	}
}

func TestClassifyPaidOverridesDate(t *testing.T) {
	now := day(2024, 5, 10)
	for _, due := range []time.Time{day(2024, 1, 1), now, day(2025, 1, 1)} {
		got := Classify(due, now, "paid")
		assert.Equal(t, Paid, got.Bucket)
		assert.Equal(t, "Paid", got.Label())
	}
}

func TestClassifyExclusiveAndExhaustive(t *testing.T) {
	now := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	for off := -40; off <= 40; off++ {
		due := day(2024, 5, 10).AddDate(0, 0, off)
		for _, st := range []string{"pending", "paid", "not_started"} {
			got := Classify(due, now, st)
			if st == "paid" {
				assert.Equal(t, Paid, got.Bucket)
				continue
			}
			assert.NotEqual(t, Paid, got.Bucket)
			switch {
			case off < 0:
				assert.Equal(t, Overdue, got.Bucket)
			case off <= SoonWindow:
				assert.Equal(t, DueSoon, got.Bucket)
			default:
				assert.Equal(t, OnTrack, got.Bucket)
			}
		}
	}
}

func TestClassifyStableWithinDay(t *testing.T) {
	due := day(2024, 5, 13)
	morning := time.Date(2024, 5, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, Classify(due, morning, ""), Classify(due, night, ""))
	assert.Equal(t, 3, Classify(due, night, "").DaysDelta)
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2024, 3, 30, 12, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(day(2024, 4, 1), now))
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "overdue", Overdue.String())
	assert.Equal(t, "due_soon", DueSoon.String())
	assert.Equal(t, "on_track", OnTrack.String())
	assert.Equal(t, "paid", Paid.String())
}
