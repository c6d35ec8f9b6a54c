package uploadhttp

import (
	"encoding/json"
	"net/http"
)

// Response is the body of every upload answer.
type Response struct {
	OK     bool      `json:"ok"`
	Errors []string  `json:"errors"`
	File   *FileInfo `json:"file,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	if body.Errors == nil {
		body.Errors = []string{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Errors: []string{msg}})
}
