package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"worktrack/internal/db"
	"worktrack/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	g, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(g))
	return g
}

func TestInvoiceStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewInvoiceStore(openTestDB(t))

	late := &models.Invoice{VendorName: "B Ltd", InvoiceNumber: "INV-2", Amount: decimal.RequireFromString("10.50"), DueDate: models.MustDate("2024-03-01")}
	early := &models.Invoice{VendorName: "A Ltd", InvoiceNumber: "INV-1", Amount: decimal.RequireFromString("99.99"), DueDate: models.MustDate("2024-02-01")}
	require.NoError(t, s.Create(ctx, late))
	require.NoError(t, s.Create(ctx, early))
	assert.Equal(t, models.InvoicePending, early.Status)

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "INV-1", rows[0].InvoiceNumber)
	assert.True(t, decimal.RequireFromString("99.99").Equal(rows[0].Amount))

	require.NoError(t, s.MarkPaid(ctx, early.ID))
	assert.ErrorIs(t, s.MarkPaid(ctx, early.ID), models.ErrInvalidTransition)

	unpaid, err := s.ListUnpaid(ctx)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, late.ID, unpaid[0].ID)

	late.VendorName = "B Holdings"
	late.Notes = "net 30"
	require.NoError(t, s.Update(ctx, late.ID, *late))
	got, err := s.Get(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, "B Holdings", got.VendorName)
	assert.Equal(t, "net 30", got.Notes)
	assert.Equal(t, models.InvoicePending, got.Status)

	_, err = s.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, uuid.New(), *late), ErrNotFound)
}

func TestIssueStoreTransitions(t *testing.T) {
	ctx := context.Background()
	s := NewIssueStore(openTestDB(t))
	reporter := uuid.New()

	is := &models.IssueReport{Title: "Printer jam", Category: "hardware", Priority: "high", ReportedBy: reporter}
	require.NoError(t, s.Create(ctx, is))
	assert.Regexp(t, `^IT-\d{8}-[0-9A-F]{6}$`, is.TicketNumber)
	assert.Equal(t, models.IssueNotStarted, is.Status)

	now := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)

	_, err := s.UpdateStatus(ctx, is.ID, models.IssueResolved, "  ", now)
	assert.ErrorIs(t, err, models.ErrResolutionNotesRequired)

	got, err := s.UpdateStatus(ctx, is.ID, models.IssueInProgress, "", now)
	require.NoError(t, err)
	assert.Equal(t, models.IssueInProgress, got.Status)
	assert.Nil(t, got.ResolvedAt)

	got, err = s.UpdateStatus(ctx, is.ID, models.IssueResolved, "replaced roller", now)
	require.NoError(t, err)
	assert.Equal(t, models.IssueResolved, got.Status)
	assert.Equal(t, "replaced roller", got.ResolutionNotes)
	require.NotNil(t, got.ResolvedAt)
	assert.True(t, got.ResolvedAt.Equal(now))

	_, err = s.UpdateStatus(ctx, is.ID, models.IssueInProgress, "", now)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	mine, err := s.ListByReporter(ctx, reporter)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	other, err := s.ListByReporter(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedgerStore(t *testing.T) {
	ctx := context.Background()
	s := NewLedgerStore(openTestDB(t))

	n := &models.LedgerNote{Title: "Renew licences", Category: "reminder"}
	require.NoError(t, s.Create(ctx, n))

	done, err := s.ToggleComplete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = s.ToggleComplete(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, done)

	n.Title = "Renew AV licences"
	n.Category = models.LedgerDocument
	n.FileURL = "https://cdn.example/u/1.pdf"
	n.FileName = "quote.pdf"
	require.NoError(t, s.Update(ctx, n.ID, *n))
	got, err := s.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.HasFile())
	assert.Equal(t, "Renew AV licences", got.Title)

	require.NoError(t, s.Delete(ctx, n.ID))
	assert.ErrorIs(t, s.Delete(ctx, n.ID), ErrNotFound)
}

func TestEventStoreOrdersByDate(t *testing.T) {
	ctx := context.Background()
	s := NewEventStore(openTestDB(t))
	require.NoError(t, s.Create(ctx, &models.CalendarEvent{Title: "Audit", EventType: "meeting", EventDate: models.MustDate("2024-02-20")}))
	require.NoError(t, s.Create(ctx, &models.CalendarEvent{Title: "Backup", EventType: "maintenance", EventDate: models.MustDate("2024-02-03")}))

	rows, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Backup", rows[0].Title)
}

func TestRegisterAndRoles(t *testing.T) {
	ctx := context.Background()
	g := openTestDB(t)
	users, profiles := NewUserStore(g), NewProfileStore(g)

	u := &models.User{Email: "  Boss@Example.com ", PasswordHash: []byte("x")}
	p := &models.Profile{FullName: "Kofi Boateng", Department: "Transport"}
	role, err := users.Register(ctx, u, p)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role, "first account")

	u2 := &models.User{Email: "ama@example.com", PasswordHash: []byte("x")}
	role, err = users.Register(ctx, u2, &models.Profile{FullName: "Ama Mensah", Department: "Clinic"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	got, err := users.ByEmail(ctx, "BOSS@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "boss@example.com", got.Email)

	_, err = users.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	// вторая строка роли не меняет первую
	require.NoError(t, profiles.AddRole(ctx, u.ID, models.RoleUser))
	role, err = profiles.FirstRole(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = profiles.FirstRole(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	ps, err := profiles.ByUserIDs(ctx, []uuid.UUID{u2.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Clinic", ps[0].Department)
	assert.Equal(t, "ama@example.com", ps[0].Email)

	roles, err := profiles.RolesFor(ctx, []uuid.UUID{u.ID})
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, models.RoleAdmin, roles[0].Role)

	// дубликат email
	_, err = users.Register(ctx, &models.User{Email: "ama@example.com", PasswordHash: []byte("y")}, &models.Profile{})
	assert.Error(t, err)
}

// Место admin уже занято конкурентом, который закоммитил раньше:
// даже единственный видимый пользователь получает user.
func TestRegisterLosesTakenAdminSeat(t *testing.T) {
	ctx := context.Background()
	g := openTestDB(t)
	users, profiles := NewUserStore(g), NewProfileStore(g)
	require.NoError(t, g.Create(&models.AdminSeat{ID: 1, UserID: uuid.New()}).Error)

	u := &models.User{Email: "late@example.com", PasswordHash: []byte("x")}
	role, err := users.Register(ctx, u, &models.Profile{FullName: "Late"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	role, err = profiles.FirstRole(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	var n int64
	require.NoError(t, g.Model(&models.AdminSeat{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
