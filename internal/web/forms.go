package web

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"worktrack/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// formError: сообщение для формы из ошибок валидатора: первое поле.
func formError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err.Error()
	}
	f := ve[0]
	switch f.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f.Field())
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f.Field(), f.Param())
	case "datetime":
		return fmt.Sprintf("%s is not a valid date", f.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f.Field(), f.Param())
	default:
		return fmt.Sprintf("%s is invalid", f.Field())
	}
}

func field(r *http.Request, name string) string { return strings.TrimSpace(r.FormValue(name)) }

type signInForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type signUpForm struct {
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=6"`
	FullName   string `validate:"required,max=255"`
	Department string `validate:"max=128"`
}

type invoiceForm struct {
	VendorName    string `validate:"required,max=255"`
	InvoiceNumber string `validate:"required,max=128"`
	Amount        string `validate:"required"`
	Description   string
	IssueDate     string `validate:"required,datetime=2006-01-02"`
	DueDate       string `validate:"required,datetime=2006-01-02"`
	Notes         string
}

// newInvoiceForm: дата выставления сегодня, срок через 30 дней.
func newInvoiceForm(today time.Time) invoiceForm {
	return invoiceForm{
		IssueDate: today.Format(models.ISODate),
		DueDate:   today.AddDate(0, 0, 30).Format(models.ISODate),
	}
}

func invoiceFormFrom(inv models.Invoice) invoiceForm {
	return invoiceForm{
		VendorName:    inv.VendorName,
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount.StringFixed(2),
		Description:   inv.Description,
		IssueDate:     models.DateISO(inv.IssueDate),
		DueDate:       models.DateISO(inv.DueDate),
		Notes:         inv.Notes,
	}
}

func readInvoiceForm(r *http.Request) invoiceForm {
	return invoiceForm{
		VendorName:    field(r, "vendor_name"),
		InvoiceNumber: field(r, "invoice_number"),
		Amount:        field(r, "amount"),
		Description:   field(r, "description"),
		IssueDate:     field(r, "issue_date"),
		DueDate:       field(r, "due_date"),
		Notes:         field(r, "notes"),
	}
}

func (f invoiceForm) invoice() (models.Invoice, error) {
	if err := validate.Struct(f); err != nil {
		return models.Invoice{}, errors.New(formError(err))
	}
	amount, err := decimal.NewFromString(f.Amount)
	if err != nil || amount.IsNegative() {
		return models.Invoice{}, errors.New("Amount must be a non-negative number")
	}
	issue, _ := models.ParseDate(f.IssueDate)
	due, _ := models.ParseDate(f.DueDate)
	return models.Invoice{
		VendorName:    f.VendorName,
		InvoiceNumber: f.InvoiceNumber,
		Amount:        amount.Round(2),
		Description:   f.Description,
		IssueDate:     issue,
		DueDate:       due,
		Notes:         f.Notes,
	}, nil
}

type issueForm struct {
	Title       string `validate:"required,max=255"`
	Description string `validate:"required"`
	Category    string `validate:"required,oneof=hardware software network general"`
	Priority    string `validate:"required,oneof=low medium high critical"`
	Department  string `validate:"max=128"`
}

func readIssueForm(r *http.Request) issueForm {
	return issueForm{
		Title:       field(r, "title"),
		Description: field(r, "description"),
		Category:    field(r, "category"),
		Priority:    field(r, "priority"),
		Department:  field(r, "department"),
	}
}

func (f issueForm) issue(departments []string) (models.IssueReport, error) {
	if err := validate.Struct(f); err != nil {
		return models.IssueReport{}, errors.New(formError(err))
	}
	if f.Department != "" && !slices.Contains(departments, f.Department) {
		return models.IssueReport{}, fmt.Errorf("Unknown department %q", f.Department)
	}
	return models.IssueReport{
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Priority:    f.Priority,
		Department:  f.Department,
	}, nil
}

// datetime-local из браузера
const reminderLayout = "2006-01-02T15:04"

type ledgerForm struct {
	Title        string `validate:"required,max=255"`
	Content      string
	Category     string `validate:"required,oneof=note reminder plan document"`
	ReminderDate string `validate:"omitempty,datetime=2006-01-02T15:04"`
}

// ledgerFormFrom: напоминание хранится в UTC, в форму идёт в loc.
func ledgerFormFrom(n models.LedgerNote, loc *time.Location) ledgerForm {
	f := ledgerForm{Title: n.Title, Content: n.Content, Category: n.Category}
	if n.ReminderDate != nil {
		f.ReminderDate = n.ReminderDate.In(loc).Format(reminderLayout)
	}
	return f
}

func readLedgerForm(r *http.Request) ledgerForm {
	return ledgerForm{
		Title:        field(r, "title"),
		Content:      field(r, "content"),
		Category:     field(r, "category"),
		ReminderDate: field(r, "reminder_date"),
	}
}

func (f ledgerForm) note(loc *time.Location) (models.LedgerNote, error) {
	if err := validate.Struct(f); err != nil {
		return models.LedgerNote{}, errors.New(formError(err))
	}
	n := models.LedgerNote{Title: f.Title, Content: f.Content, Category: f.Category}
	if f.ReminderDate != "" {
		t, err := time.ParseInLocation(reminderLayout, f.ReminderDate, loc)
		if err != nil {
			return models.LedgerNote{}, errors.New("ReminderDate is not a valid date")
		}
		t = t.UTC()
		n.ReminderDate = &t
	}
	return n, nil
}

type eventForm struct {
	Title       string `validate:"required,max=255"`
	Description string
	EventType   string `validate:"required,oneof=reminder deadline meeting"`
	EventDate   string `validate:"required,datetime=2006-01-02"`
}

func readEventForm(r *http.Request) eventForm {
	return eventForm{
		Title:       field(r, "title"),
		Description: field(r, "description"),
		EventType:   field(r, "event_type"),
		EventDate:   field(r, "event_date"),
	}
}

func (f eventForm) event() (models.CalendarEvent, error) {
	if err := validate.Struct(f); err != nil {
		return models.CalendarEvent{}, errors.New(formError(err))
	}
	d, _ := models.ParseDate(f.EventDate)
	return models.CalendarEvent{Title: f.Title, Description: f.Description, EventType: f.EventType, EventDate: d}, nil
}
