package web

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"worktrack/internal/export"
	"worktrack/internal/filter"
	"worktrack/internal/models"
	"worktrack/internal/repo"
)

// exportRequest: общие параметры выгрузки из query: format, start, end.
func exportRequest(r *http.Request) (export.Format, export.Range, error) {
	q := r.URL.Query()
	f, ok := export.ParseFormat(q.Get("format"))
	if !ok {
		return "", export.Range{}, fmt.Errorf("unsupported format %q", q.Get("format"))
	}
	rg := export.Range{Start: q.Get("start"), End: q.Get("end")}
	if err := rg.Validate(); err != nil {
		return "", export.Range{}, fmt.Errorf("bad date range: %w", err)
	}
	return f, rg, nil
}

func sendFile(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) InvoicesExport(w http.ResponseWriter, r *http.Request) {
	f, rg, err := exportRequest(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err)
		return
	}
	status := r.URL.Query().Get("status")
	if !knownStatus(status, string(models.InvoicePending), string(models.InvoicePaid), filter.Overdue) {
		problem(w, http.StatusBadRequest, fmt.Errorf("unknown status %q", status))
		return
	}
	now := h.d.Now()
	p, err := h.d.Views.Invoices(r.Context(), current(r), status, now)
	if err != nil {
		h.fail(w, r, "invoices export", err)
		return
	}
	rows := make([]models.Invoice, 0, len(p.Rows))
	for _, row := range p.Rows {
		rows = append(rows, row.Invoice)
	}
	body, err := export.Invoices(rows, f, export.Options{Now: now, Currency: h.d.Currency, Filter: status, Range: rg})
	if err != nil {
		h.log.WithError(err).WithField("format", f).Error("invoices export")
		problem(w, http.StatusInternalServerError, errors.New("export failed"))
		return
	}
	sendFile(w, f.ContentType(), export.FileName("invoices", filterName(status), rg, f), body)
}

func (h *Handler) IssuesExport(w http.ResponseWriter, r *http.Request) {
	f, rg, err := exportRequest(r)
	if err != nil {
		problem(w, http.StatusBadRequest, err)
		return
	}
	crit := issueCriteria(r)
	if !knownStatus(crit.Status, string(models.IssueNotStarted), string(models.IssueInProgress), string(models.IssueResolved)) {
		problem(w, http.StatusBadRequest, fmt.Errorf("unknown status %q", crit.Status))
		return
	}
	p, err := h.d.Views.Issues(r.Context(), current(r), crit)
	if err != nil {
		h.fail(w, r, "issues export", err)
		return
	}
	now := h.d.Now()
	body, err := export.Issues(p.Rows, f, export.Options{Now: now, Currency: h.d.Currency, Filter: crit.Status, Range: rg})
	if err != nil {
		h.log.WithError(err).WithField("format", f).Error("issues export")
		problem(w, http.StatusInternalServerError, errors.New("export failed"))
		return
	}
	sendFile(w, f.ContentType(), export.FileName("issues", filterName(crit.Status), rg, f), body)
}

// knownStatus: пусто, all или одно из allowed.
func knownStatus(s string, allowed ...string) bool {
	return s == "" || s == filter.All || slices.Contains(allowed, s)
}

func filterName(s string) string {
	if s == "" {
		return filter.All
	}
	return s
}

// IssueTicket: e-ticket решённой заявки; автору и admin.
func (h *Handler) IssueTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s := current(r)
	is, err := h.d.Issues.Get(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !s.IsAdmin() && is.ReportedBy != s.UserID) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, "issue ticket", err)
		return
	}
	if is.Status != models.IssueResolved {
		problem(w, http.StatusConflict, errors.New("e-ticket is available for resolved issues only"))
		return
	}
	sendFile(w, "text/plain; charset=utf-8", export.TicketFileName(*is), []byte(export.ETicket(*is)))
}
