package geoip

import (
	"errors"
	"testing"
)

func TestNewResolverEmptyPathDisablesLookups(t *testing.T) {
	resolver, err := NewResolver("  ")
	if err != nil {
		t.Fatalf("NewResolver error: %v", err)
	}
	if resolver != nil {
		t.Fatal("empty path must yield a nil resolver")
	}
	if _, err := resolver.CountryCode("203.0.113.1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("CountryCode on nil resolver = %v, want ErrUnavailable", err)
	}
}

func TestNewResolverMissingDatabase(t *testing.T) {
	if _, err := NewResolver("/nonexistent/country.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestCountryCodeWithoutDatabase(t *testing.T) {
	resolver := &Resolver{}
	if _, err := resolver.CountryCode("203.0.113.1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestCloseNilResolver(t *testing.T) {
	var resolver *Resolver
	if err := resolver.Close(); err != nil {
		t.Fatalf("Close on nil resolver: %v", err)
	}
}
