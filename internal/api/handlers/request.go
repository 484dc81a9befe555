package handlers

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP возвращает IP клиента с учетом прокси-заголовка
func ClientIP(r *http.Request) *string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// Первый адрес в цепочке - исходный клиент
		ip := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if ip != "" {
			return &ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return nil
		}
		addr := r.RemoteAddr
		return &addr
	}
	return &host
}

// UserAgent возвращает User-Agent запроса или nil, если он не задан
func UserAgent(r *http.Request) *string {
	ua := r.UserAgent()
	if ua == "" {
		return nil
	}
	return &ua
}
