package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUnknownStatus           = errors.New("unknown status")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrResolutionNotesRequired = errors.New("resolution notes are required to resolve an issue")
)

func issueRank(s IssueStatus) int {
	switch s {
	case IssueNotStarted:
		return 0
	case IssueInProgress:
		return 1
	case IssueResolved:
		return 2
	}
	return -1
}

func ParseIssueStatus(s string) (IssueStatus, error) {
	st := IssueStatus(strings.TrimSpace(s))
	if issueRank(st) < 0 {
		return "", ErrUnknownStatus
	}
	return st, nil
}

// IssueTransition: набор полей, которые пишутся одним update.
type IssueTransition struct {
	Status          IssueStatus
	ResolutionNotes string
	ResolvedAt      *time.Time
}

// Fields: колонки для gorm Updates.
func (t IssueTransition) Fields() map[string]any {
	m := map[string]any{"status": t.Status}
	if t.Status == IssueResolved {
		m["resolution_notes"] = t.ResolutionNotes
		m["resolved_at"] = t.ResolvedAt
	}
	return m
}

// PlanIssueTransition проверяет переход not_started → in_progress → resolved.
// Назад двигаться нельзя; resolved требует заметки и ставит resolved_at.
func PlanIssueTransition(cur, next IssueStatus, notes string, now time.Time) (IssueTransition, error) {
	from, to := issueRank(cur), issueRank(next)
	if from < 0 || to < 0 {
		return IssueTransition{}, ErrUnknownStatus
	}
	if to <= from {
		return IssueTransition{}, ErrInvalidTransition
	}
	t := IssueTransition{Status: next}
	if next == IssueResolved {
		notes = strings.TrimSpace(notes)
		if notes == "" {
			return IssueTransition{}, ErrResolutionNotesRequired
		}
		at := now.UTC()
		t.ResolutionNotes = notes
		t.ResolvedAt = &at
	}
	return t, nil
}

// CanPay: pending → paid, paid терминален.
func CanPay(cur InvoiceStatus) error {
	switch cur {
	case InvoicePending:
		return nil
	case InvoicePaid:
		return ErrInvalidTransition
	}
	return ErrUnknownStatus
}
