package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"worktrack/internal/logs"
	"worktrack/internal/session"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) { w.status = code; w.ResponseWriter.WriteHeader(code) }
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// LoggerMW пишет строку на запрос; поле user заполняется, если ниже по
// цепочке отработал Session.
func LoggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()
		h := &holder{}
		next.ServeHTTP(sw, r.WithContext(withHolder(r.Context(), h)))

		f := logrus.Fields{
			"reqid":  GetRequestID(r),
			"method": r.Method,
			"uri":    r.RequestURI,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).String(),
			"ip":     r.RemoteAddr,
		}
		if h.s != nil {
			f["user"] = h.s.UserID.String()
		}
		entry := logs.Logger.WithFields(f)
		if sw.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	})
}

type holderKey struct{}

// holder: ячейка, через которую Session сообщает логгеру пользователя.
type holder struct{ s *session.Session }

func withHolder(ctx context.Context, h *holder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

func remember(ctx context.Context, s *session.Session) {
	if h, ok := ctx.Value(holderKey{}).(*holder); ok {
		h.s = s
	}
}
