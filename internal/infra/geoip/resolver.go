// Package geoip maps client IPs to ISO country codes. The locale middleware
// uses the country to default requests from Arabic-speaking countries to the
// Arabic locale when no explicit preference is sent.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when no country database is loaded.
var ErrUnavailable = errors.New("geoip: database not loaded")

// Resolver answers country lookups from a local MaxMind GeoLite2/GeoIP2
// country database. Lookups are read-only and safe for concurrent use.
type Resolver struct {
	db *geoip2.Reader
}

// NewResolver opens the country database at path. An empty path disables
// geo-based locale defaults: the resolver is nil and no error is returned.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{db: db}, nil
}

// CountryCode returns the ISO 3166-1 alpha-2 code for ip, or "" when the
// database has no record for it.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.db == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.db.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Close releases the underlying database mapping.
func (r *Resolver) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
