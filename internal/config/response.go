package config

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/mindpop-lambda/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// Fail writes err as {"error": "..."} with the status apperr assigns to it.
func Fail(w http.ResponseWriter, err error) {
	JSON(w, apperr.Status(err), map[string]string{"error": apperr.Message(err)})
}
