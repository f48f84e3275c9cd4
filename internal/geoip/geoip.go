package geoip

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnknownCountry is returned when the database has no country for an IP
var ErrUnknownCountry = errors.New("no country for address")

// countryReader is the subset of *geoip2.Reader used by Resolver
type countryReader interface {
	Country(ip net.IP) (*geoip2.Country, error)
	Close() error
}

// Resolver maps client IPs to ISO country codes with a MaxMind database
type Resolver struct {
	db countryReader
}

// Open opens a GeoIP2 or GeoLite2 Country (or City) database
func Open(path string) (*Resolver, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database %s: %w", path, err)
	}
	return &Resolver{db: db}, nil
}

// Country returns the ISO 3166-1 code of the country ip belongs to
func (r *Resolver) Country(ip string) (string, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", fmt.Errorf("invalid client IP %q: %w", ip, err)
	}

	record, err := r.db.Country(net.IP(addr.Unmap().AsSlice()))
	if err != nil {
		return "", fmt.Errorf("country lookup failed: %w", err)
	}
	if record.Country.IsoCode == "" {
		return "", ErrUnknownCountry
	}
	return record.Country.IsoCode, nil
}

// Close closes the database reader
func (r *Resolver) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
