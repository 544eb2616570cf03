package handler

import (
	"fmt"
	"net/http"
)

// PageHandler serves minimal placeholder pages. Rendering is owned by the
// frontend; these routes exist so the auth gate has pages to classify.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Serve(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!doctype html><html><head><title>%s</title></head><body><h1>%s</h1></body></html>", title, title)
	}
}
