package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack/internal/filter"
	"worktrack/internal/models"
	"worktrack/internal/session"
)

var errDown = errors.New("db down")

type fakeInvoices struct {
	rows []models.Invoice
	err  error
}

func (f fakeInvoices) List(context.Context) ([]models.Invoice, error)       { return f.rows, f.err }
func (f fakeInvoices) ListRecent(context.Context) ([]models.Invoice, error) { return f.rows, f.err }
func (f fakeInvoices) ListUnpaid(context.Context) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, r := range f.rows {
		if r.Status != models.InvoicePaid {
			out = append(out, r)
		}
	}
	return out, f.err
}

type fakeIssues struct {
	rows []models.IssueReport
	err  error
}

func (f fakeIssues) List(context.Context) ([]models.IssueReport, error) {
	return append([]models.IssueReport(nil), f.rows...), f.err
}

func (f fakeIssues) ListByReporter(_ context.Context, id uuid.UUID) ([]models.IssueReport, error) {
	var out []models.IssueReport
	for _, r := range f.rows {
		if r.ReportedBy == id {
			out = append(out, r)
		}
	}
	return out, f.err
}

type fakeEvents []models.CalendarEvent

func (f fakeEvents) List(context.Context) ([]models.CalendarEvent, error) { return f, nil }

type fakeLedger []models.LedgerNote

func (f fakeLedger) List(context.Context) ([]models.LedgerNote, error) { return f, nil }

type fakeProfiles struct {
	profiles []models.Profile
	roles    []models.UserRole
	calls    int
}

func (f *fakeProfiles) List(context.Context) ([]models.Profile, error) { return f.profiles, nil }

func (f *fakeProfiles) ByUserIDs(_ context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	f.calls++
	var out []models.Profile
	for _, p := range f.profiles {
		for _, id := range ids {
			if p.UserID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeProfiles) RolesFor(context.Context, []uuid.UUID) ([]models.UserRole, error) {
	return f.roles, nil
}

var (
	now   = time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	ama   = uuid.New()
	kofi  = uuid.New()
	admin = &session.Session{UserID: uuid.New(), Role: session.RoleAdmin}
	user  = &session.Session{UserID: ama, Role: session.RoleUser}
)

func fixture() (*Composer, *fakeProfiles) {
	profiles := &fakeProfiles{
		profiles: []models.Profile{
			{UserID: ama, FullName: "Ama Mensah", Department: "Clinic"},
			{UserID: kofi, FullName: "Kofi Boateng", Department: "Transport"},
		},
		roles: []models.UserRole{
			{ID: 1, UserID: kofi, Role: models.RoleAdmin},
			{ID: 2, UserID: kofi, Role: models.RoleUser},
		},
	}
	return &Composer{
		InvoiceStore: fakeInvoices{rows: []models.Invoice{
			{InvoiceNumber: "A", Status: models.InvoicePending, DueDate: models.MustDate("2024-02-12")},
			{InvoiceNumber: "B", Status: models.InvoicePending, DueDate: models.MustDate("2024-02-01")},
			{InvoiceNumber: "C", Status: models.InvoicePaid, DueDate: models.MustDate("2024-02-01")},
		}},
		IssueStore: fakeIssues{rows: []models.IssueReport{
			{Title: "VPN", Status: models.IssueInProgress, ReportedBy: ama},
			{Title: "Printer", Status: models.IssueResolved, ReportedBy: ama},
			{Title: "Radio", Status: models.IssueNotStarted, ReportedBy: kofi, Department: "Security"},
		}},
		EventStore:   fakeEvents{{Title: "Audit", EventDate: models.MustDate("2024-02-12")}},
		LedgerStore:  fakeLedger{{Title: "n", Category: "note"}, {Title: "r", Category: "reminder"}},
		ProfileStore: profiles,
	}, profiles
}

func TestDashboardByRole(t *testing.T) {
	c, _ := fixture()
	ctx := context.Background()

	p, err := c.Dashboard(ctx, admin, now)
	require.NoError(t, err)
	assert.True(t, p.Admin)
	assert.Equal(t, 3, p.Stats.TotalInvoices)
	assert.Equal(t, 1, p.Stats.OverdueInvoices)
	assert.Equal(t, 1, p.Stats.DueSoonInvoices)
	assert.Equal(t, 2, p.Stats.OpenIssues)
	require.Len(t, p.RecentIssues, 3)
	assert.Equal(t, "Ama Mensah", p.RecentIssues[0].ReporterName())

	p, err = c.Dashboard(ctx, user, now)
	require.NoError(t, err)
	assert.False(t, p.Admin)
	assert.Len(t, p.MyIssues, 2)
	assert.Equal(t, 1, p.MyOpen)
	assert.Equal(t, 1, p.MyResolved)
}

func TestAdminRoutesForbidUsers(t *testing.T) {
	c, _ := fixture()
	ctx := context.Background()

	_, err := c.Invoices(ctx, user, filter.All, now)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = c.Ledger(ctx, user, filter.All)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = c.Calendar(ctx, user, now, now)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = c.Users(ctx, user)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = c.Users(ctx, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReadErrorIsNotEmpty(t *testing.T) {
	c, _ := fixture()
	c.InvoiceStore = fakeInvoices{err: errDown}
	c.IssueStore = fakeIssues{err: errDown}
	ctx := context.Background()

	_, err := c.Invoices(ctx, admin, filter.All, now)
	assert.ErrorIs(t, err, errDown)
	_, err = c.Dashboard(ctx, admin, now)
	assert.ErrorIs(t, err, errDown)
	_, err = c.Issues(ctx, user, filter.Criteria{})
	assert.ErrorIs(t, err, errDown)
}

func TestIssuesDepartmentFallsBackToReporter(t *testing.T) {
	c, profiles := fixture()
	ctx := context.Background()

	p, err := c.Issues(ctx, admin, filter.Criteria{Department: "Clinic"})
	require.NoError(t, err)
	assert.Len(t, p.Rows, 2)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, profiles.calls)

	// собственный отдел строки важнее отдела автора
	p, err = c.Issues(ctx, admin, filter.Criteria{Department: "Transport"})
	require.NoError(t, err)
	assert.Empty(t, p.Rows)

	// пользователь не фильтрует по отделу
	p, err = c.Issues(ctx, user, filter.Criteria{Status: string(models.IssueResolved), Department: "Security"})
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "Printer", p.Rows[0].Title)
}

func TestInvoicesOverdueFilter(t *testing.T) {
	c, _ := fixture()
	p, err := c.Invoices(context.Background(), admin, filter.Overdue, now)
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "B", p.Rows[0].InvoiceNumber)
	assert.Equal(t, "9d overdue", p.Rows[0].Due.Label())
}

func TestCalendarShowsUnpaidOnly(t *testing.T) {
	c, _ := fixture()
	m, err := c.Calendar(context.Background(), admin, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), now)
	require.NoError(t, err)

	d, ok := m.Day("2024-02-01")
	require.True(t, ok)
	require.Len(t, d.Invoices, 1)
	assert.Equal(t, "B", d.Invoices[0].InvoiceNumber)

	d, _ = m.Day("2024-02-12")
	assert.Len(t, d.Events, 1)
	d, _ = m.Day("2024-02-10")
	assert.True(t, d.IsToday)
}

func TestUsersFirstRole(t *testing.T) {
	c, _ := fixture()
	rows, err := c.Users(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.RoleUser, rows[0].Role)
	assert.Equal(t, models.RoleAdmin, rows[1].Role)
}

func TestLedgerCategory(t *testing.T) {
	c, _ := fixture()
	p, err := c.Ledger(context.Background(), admin, "reminder")
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, 2, p.Total)
}
