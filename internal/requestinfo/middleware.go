// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
This handler sits near the top of the chain, after the request logger and
before the components.  For every request it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Reads the Sec-CH-Prefers-Reduced-Motion client hint.
  3. Resolves the client IP (forwarding headers only from a trusted
     proxy peer) and looks it up in GeoLite2 when a database is loaded.
  4. Stores the `*RequestInfo` in the request context.

Instrumentation
---------------
One DEBUG line per request with IP, country, browser, device, bot flag,
reduced-motion flag, and path.
*/
package requestinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/yanizio/folio/internal/logger"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:        parseUA(r.UserAgent(), r.Header.Get("Accept-Language")),
			Geo:       lookupGeo(clientIP(r)),
			Hints:     parseHints(r.Header.Get("Sec-CH-Prefers-Reduced-Motion")),
			URL:       r.URL,
			Timestamp: time.Now().UTC(),
		}

		logger.FromContext(r.Context()).Debugw("request info",
			"ip", info.Geo.IP,
			"country", info.Geo.CountryISO,
			"browser", info.UA.Browser,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
			"reduced_motion", info.Hints.ReducedMotion,
		)

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), info)))
	})
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP returns the address of the client.  Forwarding headers are
// honoured only when the direct peer is a loopback or private address, so
// a client talking to Folio directly cannot choose its own IP.  Behind a
// proxy the left-most parseable X-Forwarded-For entry wins, then X-Real-IP.
func clientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)
	if peer == nil || !(peer.IsLoopback() || peer.IsPrivate()) {
		return peer
	}

	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
			return ip
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); ip != nil {
		return ip
	}
	return peer
}
