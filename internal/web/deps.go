package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"worktrack/internal/auth"
	"worktrack/internal/middleware"
	"worktrack/internal/repo"
	"worktrack/internal/storage"
	"worktrack/internal/views"
)

type Dependencies struct {
	Auth     *auth.Service
	Views    *views.Composer
	Invoices *repo.InvoiceStore
	Issues   *repo.IssueStore
	Events   *repo.EventStore
	Ledger   *repo.LedgerStore
	Storage  storage.Storage
	Log      *logrus.Logger

	CookieName   string
	SecureCookie bool
	Currency     string
	Departments  []string
	Location     *time.Location

	// Now: часы для "сегодня"; по умолчанию time.Now в Location.
	Now func() time.Time
}

// Attach вешает страницы на r. Всё, кроме /auth и статики, требует сессию;
// счета, ledger, календарь, пользователи и экспорт — только admin.
func Attach(r *mux.Router, d Dependencies) {
	h := newHandler(d)

	r.HandleFunc("/static/style.css", serveCSS).Methods(http.MethodGet)
	r.HandleFunc("/static/app.js", serveJS).Methods(http.MethodGet)

	r.HandleFunc("/auth", h.AuthPage).Methods(http.MethodGet)
	r.HandleFunc("/auth", h.SignIn).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", h.SignUp).Methods(http.MethodPost)

	app := r.NewRoute().Subrouter()
	app.Use(middleware.Session(d.Auth, d.CookieName, "/auth"))

	app.HandleFunc("/", h.Dashboard).Methods(http.MethodGet)
	app.HandleFunc("/signout", h.SignOut).Methods(http.MethodPost)
	app.HandleFunc("/issues", h.IssuesList).Methods(http.MethodGet)
	app.HandleFunc("/issues", h.IssueCreate).Methods(http.MethodPost)
	app.HandleFunc("/issues/{id:"+uuidRe+"}/ticket", h.IssueTicket).Methods(http.MethodGet)

	admin := app.NewRoute().Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/issues/export", h.IssuesExport).Methods(http.MethodGet)
	admin.HandleFunc("/issues/{id:"+uuidRe+"}/status", h.IssueStatus).Methods(http.MethodPost)

	admin.HandleFunc("/invoices", h.InvoicesList).Methods(http.MethodGet)
	admin.HandleFunc("/invoices", h.InvoiceCreate).Methods(http.MethodPost)
	admin.HandleFunc("/invoices/new", h.InvoiceNew).Methods(http.MethodGet)
	admin.HandleFunc("/invoices/export", h.InvoicesExport).Methods(http.MethodGet)
	admin.HandleFunc("/invoices/{id:"+uuidRe+"}/edit", h.InvoiceEdit).Methods(http.MethodGet)
	admin.HandleFunc("/invoices/{id:"+uuidRe+"}", h.InvoiceUpdate).Methods(http.MethodPost)
	admin.HandleFunc("/invoices/{id:"+uuidRe+"}/pay", h.InvoicePay).Methods(http.MethodPost)

	admin.HandleFunc("/ledger", h.LedgerList).Methods(http.MethodGet)
	admin.HandleFunc("/ledger", h.LedgerCreate).Methods(http.MethodPost)
	admin.HandleFunc("/ledger/new", h.LedgerNew).Methods(http.MethodGet)
	admin.HandleFunc("/ledger/{id:"+uuidRe+"}/edit", h.LedgerEdit).Methods(http.MethodGet)
	admin.HandleFunc("/ledger/{id:"+uuidRe+"}", h.LedgerUpdate).Methods(http.MethodPost)
	admin.HandleFunc("/ledger/{id:"+uuidRe+"}/toggle", h.LedgerToggle).Methods(http.MethodPost)
	admin.HandleFunc("/ledger/{id:"+uuidRe+"}/delete", h.LedgerDelete).Methods(http.MethodPost)

	admin.HandleFunc("/calendar", h.CalendarPage).Methods(http.MethodGet)
	admin.HandleFunc("/calendar/events", h.EventCreate).Methods(http.MethodPost)

	admin.HandleFunc("/users", h.UsersList).Methods(http.MethodGet)
}

const uuidRe = `[0-9a-fA-F\-]{36}`
