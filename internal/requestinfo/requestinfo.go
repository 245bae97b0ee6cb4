//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata: user-agent fingerprint, client IP with optional
//  geolocation, client hints, URL, and timestamp.  The structs are inert
//  and safe to log.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup, optional)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/folio/internal/cache"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties.
type UA struct {
	Raw         string
	Browser     string // "Chrome", "Firefox", "Safari", …
	Version     string // "124.0.6367"
	OS          string // "macOS", "Windows", "Android", "iOS", …
	Device      string // "Desktop", "Phone", "Tablet", …
	IsBot       bool
	PrimaryLang string // first tag from Accept-Language
}

// Geo holds best-effort IP geolocation.  Fields may be empty.
type Geo struct {
	IP         net.IP
	CountryISO string
	City       string
}

// Hints holds user preferences sent as client hints.
type Hints struct {
	ReducedMotion bool // Sec-CH-Prefers-Reduced-Motion: reduce
}

// RequestInfo is stored in the request context by Enrich.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	Hints     Hints
	URL       *url.URL
	Timestamp time.Time
}

// Compact reports whether the client is a small-screen device, which
// starts with the navigation collapsed.
func (ri *RequestInfo) Compact() bool {
	return ri != nil && (ri.UA.Device == "Phone" || ri.UA.Device == "Wearable")
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a MaxMind handle, safe for concurrent reads.  nil disables
// lookups.
var geoReader *geoip2.Reader

// geoCache keeps recent lookups by IP string.
var geoCache = cache.New[string, Geo](4096)

// InitGeo opens the GeoLite2-City database.  An empty path leaves geo
// lookups disabled.
func InitGeo(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return fmt.Errorf("requestinfo: open GeoLite2 DB: %w", err)
	}
	geoReader = r
	return nil
}

// CloseGeo releases the MaxMind handle.
func CloseGeo() error {
	if geoReader == nil {
		return nil
	}
	err := geoReader.Close()
	geoReader = nil
	return err
}

//
//  -----------------------------
//  Context helpers
//  -----------------------------
//

type ctxKey struct{}

// FromContext returns the value stored by Enrich, or nil.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// NewContext returns ctx carrying ri.
func NewContext(ctx context.Context, ri *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, ri)
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into a UA.
func parseUA(uaHeader, acceptLang string) UA {
	u := uasurfer.Parse(uaHeader)

	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Raw:         uaHeader,
		Browser:     strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version:     trimVersion(u.Browser.Version),
		OS:          osName,
		Device:      deviceName(u.DeviceType),
		IsBot:       u.IsBot(),
		PrimaryLang: primaryLang(acceptLang),
	}
}

// trimVersion renders "major.minor.patch" without trailing ".0" parts.
func trimVersion(v uasurfer.Version) string {
	parts := []string{strconv.Itoa(v.Major), strconv.Itoa(v.Minor), strconv.Itoa(v.Patch)}
	for len(parts) > 1 && parts[len(parts)-1] == "0" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

func deviceName(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// primaryLang extracts the first language tag before any ";q=" weight.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.Split(al, ",")[0])
	if i := strings.IndexByte(tag, ';'); i != -1 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

// parseHints reads the reduced-motion client hint.
func parseHints(reducedMotion string) Hints {
	v := strings.Trim(strings.TrimSpace(reducedMotion), `"`)
	return Hints{ReducedMotion: strings.EqualFold(v, "reduce")}
}

// lookupGeo returns best-effort Geo data, caching by address.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	key := ip.String()
	if g, ok := geoCache.Get(key); ok {
		return g
	}
	g := Geo{IP: ip}
	if rec, err := geoReader.City(ip); err == nil {
		g.CountryISO = rec.Country.IsoCode
		g.City = rec.City.Names["en"]
	}
	geoCache.Add(key, g)
	return g
}
