package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/akielkucki/digitalmarketplace/internal/model"
)

// Timeout aborts requests that outlive the configured window and answers
// with the standard response envelope. Auth endpoints are fast; in
// practice only a stuck database call ever trips this.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "REQUEST_TIMEOUT",
			Message: "Request took too long to complete",
		},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
