package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIP reads the address from header when the proxy sets it, taking the
// first hop of a forwarded list, and from the connection otherwise.
func clientIP(r *http.Request, header string) (netip.Addr, bool) {
	if header != "" {
		if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
			first, _, _ := strings.Cut(v, ",")
			if a, ok := parseHost(first); ok {
				return a, true
			}
		}
	}
	return parseHost(r.RemoteAddr)
}

func parseHost(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	a, err := netip.ParseAddr(strings.Trim(s, "[]"))
	if err != nil {
		return netip.Addr{}, false
	}
	return a.Unmap(), true
}

// ClientIP is the caller address as text, or RemoteAddr when unparsable.
func ClientIP(r *http.Request, ipHeader string) string {
	if a, ok := clientIP(r, ipHeader); ok {
		return a.String()
	}
	return r.RemoteAddr
}
