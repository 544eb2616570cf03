package handler

import (
	"net"
	"net/http"
	"strings"

	"github.com/akielkucki/digitalmarketplace/internal/model"
)

func actorFromRequest(r *http.Request, email string) model.AuditActor {
	return model.AuditActor{Email: email, IP: clientIP(r)}
}

func actorFromUser(r *http.Request, user model.User) model.AuditActor {
	return model.AuditActor{UserID: user.ID, Email: user.Email, IP: clientIP(r)}
}

func clientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
