package middleware

import (
	"net/http"
	"net/netip"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// TrustedRealIP применяет chi RealIP только к запросам от доверенных прокси.
// Для остальных RemoteAddr остается адресом TCP соединения, и заголовки
// X-Forwarded-For, X-Real-IP, True-Client-IP игнорируются.
// Пустой trusted означает, что сервер смотрит в интернет напрямую.
func TrustedRealIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(trusted) == 0 {
			return next
		}

		viaProxy := chimw.RealIP(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fromTrustedProxy(r, trusted) {
				viaProxy.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func fromTrustedProxy(r *http.Request, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(clientIP(r))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
