package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"worktrack/internal/logs"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
	"worktrack/internal/repo"
	"worktrack/internal/session"
	"worktrack/internal/views"
)

type Handler struct {
	d   Dependencies
	t   pageTemplates
	log *logrus.Entry
}

func newHandler(d Dependencies) *Handler {
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Now == nil {
		loc := d.Location
		d.Now = func() time.Time { return time.Now().In(loc) }
	}
	if d.Log == nil {
		d.Log = logs.Logger
	}
	return &Handler{d: d, t: parseTemplates(d.Location), log: d.Log.WithField("module", "web")}
}

// page: данные layout-а; Data — содержимое конкретной страницы.
type page struct {
	Title       string
	Nav         string
	Session     *session.Session
	Notice      string
	Error       string
	Currency    string
	Departments []string
	Data        any
}

func (h *Handler) page(r *http.Request, title, nav string, data any) page {
	s, _ := session.FromContext(r.Context())
	return page{
		Title:       title,
		Nav:         nav,
		Session:     s,
		Notice:      r.URL.Query().Get("notice"),
		Currency:    h.d.Currency,
		Departments: h.d.Departments,
		Data:        data,
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, p page) {
	t, ok := h.t[name]
	if !ok {
		http.Error(w, "template not found: "+name, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", p); err != nil {
		h.log.WithError(err).WithField("template", name).Error("render")
	}
}

// fail рендерит страницу ошибки: 403 для не-admin, 404, иначе 500
// (ошибка чтения — не пустой список).
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	msg := "Could not load data. Please try again."
	switch {
	case errors.Is(err, views.ErrForbidden):
		status, msg = http.StatusForbidden, "You do not have access to this page."
	case errors.Is(err, repo.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found."
	default:
		h.log.WithFields(logrus.Fields{"op": op, "reqid": middleware.GetRequestID(r)}).WithError(err).Error("request failed")
	}
	p := h.page(r, http.StatusText(status), "", nil)
	p.Error = msg
	h.render(w, status, "error.tmpl", p)
}

// writeFailed: лог записи со стороны хранилища.
func (h *Handler) writeFailed(r *http.Request, op string, id uuid.UUID, err error) {
	h.log.WithFields(logrus.Fields{
		"op":    op,
		"id":    id,
		"reqid": middleware.GetRequestID(r),
	}).WithError(err).Error("write failed")
}

// back: PRG с уведомлением в query.
func back(w http.ResponseWriter, r *http.Request, path, notice string) {
	if notice != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		path += sep + "notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func current(r *http.Request) *session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}

// problem: ответ для не-HTML ошибок (экспорт, тикет).
func problem(w http.ResponseWriter, status int, err error) {
	models.WriteError(w, status, err)
}
