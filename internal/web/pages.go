package web

import (
	"net/http"

	"worktrack/internal/calendar"
	"worktrack/internal/filter"
	"worktrack/internal/models"
	"worktrack/internal/views"
)

type authData struct {
	Tab   string // signin | signup
	Email string
	Form  signUpForm
}

func (h *Handler) AuthPage(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != "signup" {
		tab = "signin"
	}
	h.render(w, http.StatusOK, "auth.tmpl", h.page(r, "Sign in", "", authData{Tab: tab}))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, err := h.d.Views.Dashboard(r.Context(), current(r), h.d.Now())
	if err != nil {
		h.fail(w, r, "dashboard", err)
		return
	}
	h.render(w, http.StatusOK, "dashboard.tmpl", h.page(r, "Dashboard", "dashboard", p))
}

type issuesData struct {
	*views.IssuesPage
	Form       issueForm
	Statuses   []models.IssueStatus
	Categories []string
	Priorities []string
	Query      string
}

func (h *Handler) issuesData(p *views.IssuesPage, r *http.Request) issuesData {
	return issuesData{
		IssuesPage: p,
		Form:       issueForm{Category: "general", Priority: "medium"},
		Statuses:   models.IssueStatuses,
		Categories: models.IssueCategories,
		Priorities: models.IssuePriorities,
		Query:      r.URL.RawQuery,
	}
}

func issueCriteria(r *http.Request) filter.Criteria {
	q := r.URL.Query()
	return filter.Criteria{Status: q.Get("status"), Department: q.Get("department")}
}

func (h *Handler) IssuesList(w http.ResponseWriter, r *http.Request) {
	p, err := h.d.Views.Issues(r.Context(), current(r), issueCriteria(r))
	if err != nil {
		h.fail(w, r, "issues", err)
		return
	}
	h.render(w, http.StatusOK, "issues.tmpl", h.page(r, issuesTitle(p.Admin), "issues", h.issuesData(p, r)))
}

func issuesTitle(admin bool) string {
	if admin {
		return "Issue Tracker"
	}
	return "My Issues"
}

type invoicesData struct {
	*views.InvoicesPage
	Statuses []string
	Start    string
	End      string
}

func (h *Handler) InvoicesList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := h.d.Views.Invoices(r.Context(), current(r), q.Get("status"), h.d.Now())
	if err != nil {
		h.fail(w, r, "invoices", err)
		return
	}
	h.render(w, http.StatusOK, "invoices.tmpl", h.page(r, "Invoices", "invoices", invoicesData{
		InvoicesPage: p,
		Statuses:     []string{filter.All, string(models.InvoicePending), string(models.InvoicePaid), filter.Overdue},
		Start:        q.Get("start"),
		End:          q.Get("end"),
	}))
}

type invoiceFormData struct {
	Form   invoiceForm
	Action string
	IsNew  bool
}

func (h *Handler) InvoiceNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "invoice_form.tmpl", h.page(r, "New Invoice", "invoices", invoiceFormData{
		Form: newInvoiceForm(h.d.Now()), Action: "/invoices", IsNew: true,
	}))
}

func (h *Handler) InvoiceEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	inv, err := h.d.Invoices.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "invoice edit", err)
		return
	}
	h.render(w, http.StatusOK, "invoice_form.tmpl", h.page(r, "Edit Invoice", "invoices", invoiceFormData{
		Form: invoiceFormFrom(*inv), Action: "/invoices/" + id.String(),
	}))
}

type ledgerData struct {
	*views.LedgerPage
	Categories []string
}

func (h *Handler) LedgerList(w http.ResponseWriter, r *http.Request) {
	p, err := h.d.Views.Ledger(r.Context(), current(r), r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, r, "ledger", err)
		return
	}
	h.render(w, http.StatusOK, "ledger.tmpl", h.page(r, "Digital Ledger", "ledger", ledgerData{
		LedgerPage: p, Categories: models.LedgerCategories,
	}))
}

type ledgerFormData struct {
	Form       ledgerForm
	Action     string
	IsNew      bool
	FileName   string
	FileURL    string
	Categories []string
}

func (h *Handler) LedgerNew(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "ledger_form.tmpl", h.page(r, "New Entry", "ledger", ledgerFormData{
		Form: ledgerForm{Category: "note"}, Action: "/ledger", IsNew: true, Categories: models.LedgerCategories,
	}))
}

func (h *Handler) LedgerEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	n, err := h.d.Ledger.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "ledger edit", err)
		return
	}
	h.render(w, http.StatusOK, "ledger_form.tmpl", h.page(r, "Edit Entry", "ledger", ledgerFormData{
		Form:       ledgerFormFrom(*n, h.d.Location),
		Action:     "/ledger/" + id.String(),
		FileName:   n.FileName,
		FileURL:    n.FileURL,
		Categories: models.LedgerCategories,
	}))
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type calendarData struct {
	Month      *calendar.Month
	EventTypes []string
	Form       eventForm
	Weekdays   []string
}

func (h *Handler) CalendarPage(w http.ResponseWriter, r *http.Request) {
	now := h.d.Now()
	month, err := calendar.ParseMonth(r.URL.Query().Get("month"), now)
	if err != nil {
		month, _ = calendar.ParseMonth("", now)
	}
	m, err := h.d.Views.Calendar(r.Context(), current(r), month, now)
	if err != nil {
		h.fail(w, r, "calendar", err)
		return
	}
	h.render(w, http.StatusOK, "calendar.tmpl", h.page(r, "Calendar", "calendar", calendarData{
		Month:      m,
		EventTypes: models.EventTypes,
		Form:       eventForm{EventType: "reminder", EventDate: now.Format(models.ISODate)},
		Weekdays:   weekdays,
	}))
}

func (h *Handler) UsersList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.d.Views.Users(r.Context(), current(r))
	if err != nil {
		h.fail(w, r, "users", err)
		return
	}
	h.render(w, http.StatusOK, "users.tmpl", h.page(r, "Users", "users", rows))
}
