package res

import (
	"net"
	"net/http"
)

// RealIP returns a real IP address from the request headers.
func RealIP(r *http.Request) string {
	addr := r.RemoteAddr
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		addr = ip
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		addr = ip
	} else {
		addr, _, _ = net.SplitHostPort(addr)
	}
	return addr
}
