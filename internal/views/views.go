// Package views собирает данные страниц с учётом роли. На каждый маршрут
// одна функция; ошибки чтения возвращаются отдельно от пустого результата.
package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"worktrack/internal/calendar"
	"worktrack/internal/duedate"
	"worktrack/internal/filter"
	"worktrack/internal/models"
	"worktrack/internal/session"
	"worktrack/internal/stats"
)

var ErrForbidden = errors.New("admin role required")

// RecentLimit: сколько строк показывает дашборд администратора.
const RecentLimit = 5

type InvoiceReader interface {
	List(ctx context.Context) ([]models.Invoice, error)
	ListRecent(ctx context.Context) ([]models.Invoice, error)
	ListUnpaid(ctx context.Context) ([]models.Invoice, error)
}

type IssueReader interface {
	List(ctx context.Context) ([]models.IssueReport, error)
	ListByReporter(ctx context.Context, userID uuid.UUID) ([]models.IssueReport, error)
}

type EventReader interface {
	List(ctx context.Context) ([]models.CalendarEvent, error)
}

type LedgerReader interface {
	List(ctx context.Context) ([]models.LedgerNote, error)
}

type ProfileReader interface {
	List(ctx context.Context) ([]models.Profile, error)
	ByUserIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
	RolesFor(ctx context.Context, ids []uuid.UUID) ([]models.UserRole, error)
}

type Composer struct {
	InvoiceStore InvoiceReader
	IssueStore   IssueReader
	EventStore   EventReader
	LedgerStore  LedgerReader
	ProfileStore ProfileReader
}

// InvoiceRow: счёт с классификацией срока на момент рендера.
type InvoiceRow struct {
	models.Invoice
	Due duedate.Info
}

func invoiceRows(rows []models.Invoice, now time.Time) []InvoiceRow {
	out := make([]InvoiceRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, InvoiceRow{Invoice: r, Due: duedate.Classify(time.Time(r.DueDate), now, string(r.Status))})
	}
	return out
}

func requireAdmin(s *session.Session) error {
	if !s.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// AttachReporters: вторая половина join-а: профили авторов одним запросом,
// склейка по reported_by в памяти. Строки меняются на месте.
func AttachReporters(ctx context.Context, profiles ProfileReader, rows []models.IssueReport) error {
	if len(rows) == 0 {
		return nil
	}
	seen := map[uuid.UUID]bool{}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if !seen[r.ReportedBy] {
			seen[r.ReportedBy] = true
			ids = append(ids, r.ReportedBy)
		}
	}
	ps, err := profiles.ByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load reporters: %w", err)
	}
	byUser := make(map[uuid.UUID]*models.Profile, len(ps))
	for i := range ps {
		byUser[ps[i].UserID] = &ps[i]
	}
	for i := range rows {
		rows[i].Reporter = byUser[rows[i].ReportedBy]
	}
	return nil
}

type DashboardPage struct {
	Admin bool

	// admin
	Stats          stats.Stats
	RecentInvoices []InvoiceRow
	RecentIssues   []models.IssueReport

	// user
	MyIssues   []models.IssueReport
	MyOpen     int
	MyResolved int
}

func (c *Composer) Dashboard(ctx context.Context, s *session.Session, now time.Time) (*DashboardPage, error) {
	if !s.IsAdmin() {
		mine, err := c.IssueStore.ListByReporter(ctx, s.UserID)
		if err != nil {
			return nil, err
		}
		p := &DashboardPage{MyIssues: mine}
		p.MyOpen, p.MyResolved = stats.IssueCounts(mine)
		return p, nil
	}

	invoices, err := c.InvoiceStore.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	issues, err := c.IssueStore.List(ctx)
	if err != nil {
		return nil, err
	}
	recent := stats.Recent(issues, RecentLimit)
	if err := AttachReporters(ctx, c.ProfileStore, recent); err != nil {
		return nil, err
	}
	return &DashboardPage{
		Admin:          true,
		Stats:          stats.Aggregate(invoices, issues, now),
		RecentInvoices: invoiceRows(stats.Recent(invoices, RecentLimit), now),
		RecentIssues:   recent,
	}, nil
}

type InvoicesPage struct {
	Status string
	Rows   []InvoiceRow
	Total  int
}

// Invoices: только admin. status: all|pending|paid|overdue.
func (c *Composer) Invoices(ctx context.Context, s *session.Session, status string, now time.Time) (*InvoicesPage, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	all, err := c.InvoiceStore.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := filter.Invoices(all, status, now)
	return &InvoicesPage{Status: status, Rows: invoiceRows(rows, now), Total: len(all)}, nil
}

type IssuesPage struct {
	Admin    bool
	Criteria filter.Criteria
	Rows     []models.IssueReport
	Total    int
}

// Issues: admin видит все заявки (статус + отдел), пользователь — свои (статус).
func (c *Composer) Issues(ctx context.Context, s *session.Session, crit filter.Criteria) (*IssuesPage, error) {
	var (
		all []models.IssueReport
		err error
	)
	if s.IsAdmin() {
		all, err = c.IssueStore.List(ctx)
	} else {
		all, err = c.IssueStore.ListByReporter(ctx, s.UserID)
		crit.Department = ""
	}
	if err != nil {
		return nil, err
	}
	if err := AttachReporters(ctx, c.ProfileStore, all); err != nil {
		return nil, err
	}
	crit.Category = ""
	return &IssuesPage{
		Admin:    s.IsAdmin(),
		Criteria: crit,
		Rows:     filter.Issues(all, crit),
		Total:    len(all),
	}, nil
}

type LedgerPage struct {
	Category string
	Rows     []models.LedgerNote
	Total    int
}

func (c *Composer) Ledger(ctx context.Context, s *session.Session, category string) (*LedgerPage, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	all, err := c.LedgerStore.List(ctx)
	if err != nil {
		return nil, err
	}
	return &LedgerPage{Category: category, Rows: filter.Ledger(all, category), Total: len(all)}, nil
}

// Calendar: сетка месяца: события и неоплаченные счета.
func (c *Composer) Calendar(ctx context.Context, s *session.Session, month, now time.Time) (*calendar.Month, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	events, err := c.EventStore.List(ctx)
	if err != nil {
		return nil, err
	}
	unpaid, err := c.InvoiceStore.ListUnpaid(ctx)
	if err != nil {
		return nil, err
	}
	m := calendar.BuildMonth(month, events, unpaid)
	m.MarkToday(now)
	return &m, nil
}

type UserRow struct {
	models.Profile
	Role string
}

// Users: профили и первая строка роли каждого; без строк — user.
func (c *Composer) Users(ctx context.Context, s *session.Session) ([]UserRow, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	profiles, err := c.ProfileStore.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	roles, err := c.ProfileStore.RolesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	first := map[uuid.UUID]string{}
	for _, r := range roles {
		if _, ok := first[r.UserID]; !ok {
			first[r.UserID] = r.Role
		}
	}
	out := make([]UserRow, 0, len(profiles))
	for _, p := range profiles {
		role, ok := first[p.UserID]
		if !ok {
			role = models.RoleUser
		}
		out = append(out, UserRow{Profile: p, Role: role})
	}
	return out, nil
}
