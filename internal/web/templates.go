package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"path"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"worktrack/internal/duedate"
	"worktrack/internal/export"
	"worktrack/internal/models"
	"worktrack/internal/session"
)

//go:embed templates/*.tmpl
var tplFS embed.FS

// набор готовых шаблонов по страницам (ключ = имя файла, напр. "invoices.tmpl")
type pageTemplates map[string]*template.Template

func statusLabel(s string) string { return export.StatusLabel(s) }

// reminderLabel: "Mar 10, 09:00" в локации приложения.
func reminderLabel(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("Jan 02, 15:04")
}

func templateFuncs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"money":    func(d decimal.Decimal, currency string) string { return export.Money(d, currency) },
		"date":     func(t time.Time) string { return export.Date(t) },
		"reminder": func(t *time.Time) string { return reminderLabel(t, loc) },
		"ddate":    func(d datatypes.Date) string { return export.Date(time.Time(d)) },
		"label":    func(s any) string { return statusLabel(toString(s)) },
		"isAdmin":  func(s *session.Session) bool { return s.IsAdmin() },
		"dueClass": func(i duedate.Info) string {
			switch i.Bucket {
			case duedate.Paid:
				return "paid"
			case duedate.Overdue:
				return "overdue"
			case duedate.DueSoon:
				return "soon"
			}
			return "ok"
		},
		"eq2": func(a any, b string) bool { return toString(a) == b },
		"seq": func(n int) []int { return make([]int, n) },
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case models.IssueStatus:
		return string(x)
	case models.InvoiceStatus:
		return string(x)
	}
	return ""
}

func parseTemplates(loc *time.Location) pageTemplates {
	all, err := fs.Glob(tplFS, "templates/*.tmpl")
	if err != nil {
		log.Fatalf("web: glob templates failed: %v", err)
	}
	if len(all) == 0 {
		log.Fatalf("web: no templates found in embed FS")
	}

	// по набору на страницу: layout + страница
	out := make(pageTemplates)
	for _, f := range all {
		if path.Base(f) == "layout.tmpl" {
			continue
		}
		t := template.New("layout").Funcs(templateFuncs(loc))
		if _, err := t.ParseFS(tplFS, "templates/layout.tmpl", f); err != nil {
			log.Fatalf("web: parse %s: %v", f, err)
		}
		out[path.Base(f)] = t
	}
	return out
}
