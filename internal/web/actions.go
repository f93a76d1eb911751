package web

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"worktrack/internal/auth"
	"worktrack/internal/models"
	"worktrack/internal/repo"
	"worktrack/internal/storage"
)

const maxUpload = 10 << 20

// ---------- auth ----------

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	f := signInForm{Email: field(r, "email"), Password: r.FormValue("password")}
	fail := func(status int, msg string) {
		p := h.page(r, "Sign in", "", authData{Tab: "signin", Email: f.Email})
		p.Error = msg
		h.render(w, status, "auth.tmpl", p)
	}
	if err := validate.Struct(f); err != nil {
		fail(http.StatusUnprocessableEntity, formError(err))
		return
	}
	sess, token, err := h.d.Auth.SignIn(r.Context(), f.Email, f.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		fail(http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("sign in")
		fail(http.StatusInternalServerError, "Sign in failed. Please try again.")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.d.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.d.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	f := signUpForm{
		Email:      field(r, "email"),
		Password:   r.FormValue("password"),
		FullName:   field(r, "full_name"),
		Department: field(r, "department"),
	}
	fail := func(status int, msg string) {
		p := h.page(r, "Sign up", "", authData{Tab: "signup", Form: signUpForm{Email: f.Email, FullName: f.FullName, Department: f.Department}})
		p.Error = msg
		h.render(w, status, "auth.tmpl", p)
	}
	if err := validate.Struct(f); err != nil {
		fail(http.StatusUnprocessableEntity, formError(err))
		return
	}
	if f.Department != "" && !slices.Contains(h.d.Departments, f.Department) {
		fail(http.StatusUnprocessableEntity, "Unknown department")
		return
	}
	err := h.d.Auth.SignUp(r.Context(), auth.SignUpInput{
		Email: f.Email, Password: f.Password, FullName: f.FullName, Department: f.Department,
	})
	if errors.Is(err, auth.ErrEmailTaken) {
		fail(http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("sign up")
		fail(http.StatusInternalServerError, "Sign up failed. Please try again.")
		return
	}
	back(w, r, "/auth", "Account created. Please sign in.")
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Auth.SignOut(r.Context(), current(r)); err != nil {
		h.log.WithError(err).Warn("sign out")
	}
	http.SetCookie(w, &http.Cookie{Name: h.d.CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.Redirect(w, r, "/auth", http.StatusSeeOther)
}

// ---------- invoices ----------

func (h *Handler) renderInvoiceForm(w http.ResponseWriter, r *http.Request, status int, d invoiceFormData, msg string) {
	title := "Edit Invoice"
	if d.IsNew {
		title = "New Invoice"
	}
	p := h.page(r, title, "invoices", d)
	p.Error = msg
	h.render(w, status, "invoice_form.tmpl", p)
}

func (h *Handler) InvoiceCreate(w http.ResponseWriter, r *http.Request) {
	f := readInvoiceForm(r)
	d := invoiceFormData{Form: f, Action: "/invoices", IsNew: true}
	inv, err := f.invoice()
	if err != nil {
		h.renderInvoiceForm(w, r, http.StatusUnprocessableEntity, d, err.Error())
		return
	}
	inv.CreatedBy = current(r).UserID
	if err := h.d.Invoices.Create(r.Context(), &inv); err != nil {
		h.writeFailed(r, "invoice create", inv.ID, err)
		h.renderInvoiceForm(w, r, http.StatusInternalServerError, d, "Could not save the invoice.")
		return
	}
	back(w, r, "/invoices", "Invoice created")
}

func (h *Handler) InvoiceUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f := readInvoiceForm(r)
	d := invoiceFormData{Form: f, Action: "/invoices/" + id.String()}
	inv, err := f.invoice()
	if err != nil {
		h.renderInvoiceForm(w, r, http.StatusUnprocessableEntity, d, err.Error())
		return
	}
	if err := h.d.Invoices.Update(r.Context(), id, inv); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			h.fail(w, r, "invoice update", err)
			return
		}
		h.writeFailed(r, "invoice update", id, err)
		h.renderInvoiceForm(w, r, http.StatusInternalServerError, d, "Could not save the invoice.")
		return
	}
	back(w, r, "/invoices", "Invoice updated")
}

func (h *Handler) InvoicePay(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch err := h.d.Invoices.MarkPaid(r.Context(), id); {
	case err == nil:
		back(w, r, "/invoices", "Invoice marked as paid")
	case errors.Is(err, repo.ErrNotFound):
		h.fail(w, r, "invoice pay", err)
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, repo.ErrConflict):
		back(w, r, "/invoices", "Invoice is already paid")
	default:
		h.writeFailed(r, "invoice pay", id, err)
		back(w, r, "/invoices", "Could not update the invoice")
	}
}

// ---------- issues ----------

func (h *Handler) IssueCreate(w http.ResponseWriter, r *http.Request) {
	s := current(r)
	f := readIssueForm(r)
	if !s.IsAdmin() {
		// отдел пользователя берётся из профиля
		f.Department = ""
	}
	status := http.StatusUnprocessableEntity
	is, err := f.issue(h.d.Departments)
	if err == nil {
		is.ReportedBy = s.UserID
		if err = h.d.Issues.Create(r.Context(), &is); err != nil {
			h.writeFailed(r, "issue create", is.ID, err)
			status, err = http.StatusInternalServerError, errors.New("Could not submit the issue.")
		}
	}
	if err == nil {
		back(w, r, "/issues", "Issue "+is.TicketNumber+" submitted")
		return
	}

	p, lerr := h.d.Views.Issues(r.Context(), s, issueCriteria(r))
	if lerr != nil {
		h.fail(w, r, "issues", lerr)
		return
	}
	d := h.issuesData(p, r)
	d.Form = f
	pg := h.page(r, issuesTitle(p.Admin), "issues", d)
	pg.Error = err.Error()
	h.render(w, status, "issues.tmpl", pg)
}

func (h *Handler) IssueStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	next, err := models.ParseIssueStatus(field(r, "status"))
	if err != nil {
		back(w, r, "/issues", "Unknown status")
		return
	}
	is, err := h.d.Issues.UpdateStatus(r.Context(), id, next, r.FormValue("resolution_notes"), h.d.Now())
	switch {
	case err == nil:
		back(w, r, "/issues", fmt.Sprintf("Issue %s is now %s", is.TicketNumber, statusLabel(string(is.Status))))
	case errors.Is(err, repo.ErrNotFound):
		h.fail(w, r, "issue status", err)
	case errors.Is(err, models.ErrResolutionNotesRequired):
		back(w, r, "/issues", "Resolution notes are required to resolve an issue")
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, repo.ErrConflict):
		back(w, r, "/issues", "Status cannot move backwards")
	default:
		h.writeFailed(r, "issue status", id, err)
		back(w, r, "/issues", "Could not update the issue")
	}
}

// ---------- ledger ----------

func (h *Handler) renderLedgerForm(w http.ResponseWriter, r *http.Request, status int, d ledgerFormData, msg string) {
	d.Categories = models.LedgerCategories
	title := "Edit Entry"
	if d.IsNew {
		title = "New Entry"
	}
	p := h.page(r, title, "ledger", d)
	p.Error = msg
	h.render(w, status, "ledger_form.tmpl", p)
}

// upload: вложение из поля file; без файла возвращает пустые строки.
func (h *Handler) upload(r *http.Request) (url, name string, err error) {
	file, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	ct := hdr.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(hdr.Filename))
	}
	key := storage.ObjectPath(current(r).UserID, hdr.Filename, h.d.Now())
	url, err = h.d.Storage.Upload(r.Context(), key, ct, file)
	if err != nil {
		return "", "", err
	}
	return url, filepath.Base(hdr.Filename), nil
}

func uploadMessage(err error) string {
	if errors.Is(err, storage.ErrDisabled) {
		return "Document uploads are not configured on this server."
	}
	return "Could not upload the file."
}

func (h *Handler) parseLedger(r *http.Request) (ledgerForm, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return ledgerForm{}, errors.New("File is too large (max 10 MB)")
	}
	return readLedgerForm(r), nil
}

func (h *Handler) LedgerCreate(w http.ResponseWriter, r *http.Request) {
	f, err := h.parseLedger(r)
	d := ledgerFormData{Form: f, Action: "/ledger", IsNew: true}
	if err != nil {
		h.renderLedgerForm(w, r, http.StatusRequestEntityTooLarge, d, err.Error())
		return
	}
	n, err := f.note(h.d.Location)
	if err != nil {
		h.renderLedgerForm(w, r, http.StatusUnprocessableEntity, d, err.Error())
		return
	}
	if n.Category == models.LedgerDocument {
		if n.FileURL, n.FileName, err = h.upload(r); err != nil {
			h.log.WithError(err).Warn("ledger upload")
			h.renderLedgerForm(w, r, http.StatusBadGateway, d, uploadMessage(err))
			return
		}
	}
	n.CreatedBy = current(r).UserID
	if err := h.d.Ledger.Create(r.Context(), &n); err != nil {
		h.writeFailed(r, "ledger create", n.ID, err)
		h.renderLedgerForm(w, r, http.StatusInternalServerError, d, "Could not save the entry.")
		return
	}
	back(w, r, "/ledger", "Entry created")
}

func (h *Handler) LedgerUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	cur, err := h.d.Ledger.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "ledger update", err)
		return
	}
	f, err := h.parseLedger(r)
	d := ledgerFormData{Form: f, Action: "/ledger/" + id.String(), FileName: cur.FileName, FileURL: cur.FileURL}
	if err != nil {
		h.renderLedgerForm(w, r, http.StatusRequestEntityTooLarge, d, err.Error())
		return
	}
	n, err := f.note(h.d.Location)
	if err != nil {
		h.renderLedgerForm(w, r, http.StatusUnprocessableEntity, d, err.Error())
		return
	}
	// файл сохраняется, пока категория document и его не убрали явно
	if n.Category == models.LedgerDocument && r.FormValue("remove_file") == "" {
		n.FileURL, n.FileName = cur.FileURL, cur.FileName
		url, name, err := h.upload(r)
		if err != nil {
			h.log.WithError(err).Warn("ledger upload")
			h.renderLedgerForm(w, r, http.StatusBadGateway, d, uploadMessage(err))
			return
		}
		if url != "" {
			n.FileURL, n.FileName = url, name
		}
	}
	if err := h.d.Ledger.Update(r.Context(), id, n); err != nil {
		h.writeFailed(r, "ledger update", id, err)
		h.renderLedgerForm(w, r, http.StatusInternalServerError, d, "Could not save the entry.")
		return
	}
	back(w, r, "/ledger", "Entry updated")
}

func (h *Handler) LedgerToggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	done, err := h.d.Ledger.ToggleComplete(r.Context(), id)
	switch {
	case err == nil && done:
		back(w, r, "/ledger", "Marked as completed")
	case err == nil:
		back(w, r, "/ledger", "Marked as not completed")
	case errors.Is(err, repo.ErrNotFound):
		h.fail(w, r, "ledger toggle", err)
	default:
		h.writeFailed(r, "ledger toggle", id, err)
		back(w, r, "/ledger", "Could not update the entry")
	}
}

func (h *Handler) LedgerDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch err := h.d.Ledger.Delete(r.Context(), id); {
	case err == nil:
		back(w, r, "/ledger", "Entry deleted")
	case errors.Is(err, repo.ErrNotFound):
		h.fail(w, r, "ledger delete", err)
	default:
		h.writeFailed(r, "ledger delete", id, err)
		back(w, r, "/ledger", "Could not delete the entry")
	}
}

// ---------- calendar ----------

func (h *Handler) EventCreate(w http.ResponseWriter, r *http.Request) {
	f := readEventForm(r)
	status := http.StatusUnprocessableEntity
	e, err := f.event()
	if err == nil {
		e.CreatedBy = current(r).UserID
		if err = h.d.Events.Create(r.Context(), &e); err != nil {
			h.writeFailed(r, "event create", e.ID, err)
			status, err = http.StatusInternalServerError, errors.New("Could not save the event.")
		}
	}
	if err == nil {
		back(w, r, "/calendar?month="+e.DateISO()[:7], "Event added")
		return
	}

	now := h.d.Now()
	m, lerr := h.d.Views.Calendar(r.Context(), current(r), monthOf(f.EventDate, now), now)
	if lerr != nil {
		h.fail(w, r, "calendar", lerr)
		return
	}
	p := h.page(r, "Calendar", "calendar", calendarData{
		Month: m, EventTypes: models.EventTypes, Form: f,
		Weekdays: weekdays,
	})
	p.Error = err.Error()
	h.render(w, status, "calendar.tmpl", p)
}

// monthOf: месяц даты формы; при мусоре — текущий.
func monthOf(iso string, now time.Time) time.Time {
	t, err := time.Parse(models.ISODate, iso)
	if err != nil {
		t = now
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
