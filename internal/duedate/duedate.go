// Package duedate классифицирует сроки оплаты/исполнения относительно "сейчас".
package duedate

import (
	"fmt"
	"time"
)

type Bucket int

const (
	OnTrack Bucket = iota
	DueSoon
	Overdue
	Paid
)

// SoonWindow: сколько дней до срока ещё считается "скоро".
const SoonWindow = 5

func (b Bucket) String() string {
	switch b {
	case OnTrack:
		return "on_track"
	case DueSoon:
		return "due_soon"
	case Overdue:
		return "overdue"
	case Paid:
		return "paid"
	}
	return "unknown"
}

type Info struct {
	Bucket    Bucket
	DaysDelta int
}

// Classify считает разницу в целых календарных днях (due − now) и раскладывает
// по корзинам. status "paid" перекрывает дату.
func Classify(due, now time.Time, status string) Info {
	if status == "paid" {
		return Info{Bucket: Paid}
	}
	d := DaysBetween(due, now)
	switch {
	case d < 0:
		return Info{Bucket: Overdue, DaysDelta: d}
	case d <= SoonWindow:
		return Info{Bucket: DueSoon, DaysDelta: d}
	default:
		return Info{Bucket: OnTrack, DaysDelta: d}
	}
}

// DaysBetween: due − now в целых днях. due трактуется как календарная дата
// (в своей локации), now — как дата в своей локации; время суток отбрасывается,
// поэтому результат не дрожит в течение дня.
func DaysBetween(due, now time.Time) int {
	dy, dm, dd := due.Date()
	ny, nm, nd := now.Date()
	a := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// Magnitude: |DaysDelta|, для "Nd overdue".
func (i Info) Magnitude() int {
	if i.DaysDelta < 0 {
		return -i.DaysDelta
	}
	return i.DaysDelta
}

func (i Info) Label() string {
	switch i.Bucket {
	case Paid:
		return "Paid"
	case Overdue:
		return fmt.Sprintf("%dd overdue", i.Magnitude())
	default:
		return fmt.Sprintf("%dd left", i.DaysDelta)
	}
}
