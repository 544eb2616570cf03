package handler

import (
	"net/http"

	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.AuditQuery{
		Action: q.Get("action"),
		Status: q.Get("status"),
		Email:  q.Get("email"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 50),
	}

	entries, meta, err := h.service.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entries, &meta)
}
