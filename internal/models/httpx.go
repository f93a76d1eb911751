package models

import (
	"encoding/json"
	"net/http"
)

// Problem: ответ об ошибке в стиле RFC 7807.
type Problem struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Extra    any    `json:"extra,omitempty"`
}

func WriteProblem(w http.ResponseWriter, status int, title, detail string, extra any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Title:  title,
		Status: status,
		Detail: detail,
		Extra:  extra,
	})
}

// WriteError: короткая форма, title берётся из статуса, detail из ошибки.
func WriteError(w http.ResponseWriter, status int, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	WriteProblem(w, status, http.StatusText(status), detail, nil)
}
