// Package phone is the seam around the international phone-number widget.
// Forms feed a raw string in on populate and read a normalized string out
// on save; everything between those two calls is the formatter's business.
package phone

import (
	"github.com/nyaruka/phonenumbers"
)

// Formatter holds one phone number at a time. SetNumber accepts whatever
// the user or server provided; Number returns the normalized form, or the
// raw input unchanged when normalization is not possible.
type Formatter interface {
	SetNumber(raw string)
	Number() string
}

// Passthrough is the no-widget fallback: the raw value passes through
// unmodified in both directions.
type Passthrough struct {
	raw string
}

// SetNumber stores the raw value.
func (p *Passthrough) SetNumber(raw string) { p.raw = raw }

// Number returns the stored value unmodified.
func (p *Passthrough) Number() string { return p.raw }

// International normalizes numbers to E.164 using libphonenumber metadata.
// Numbers without a country prefix are interpreted against the configured
// default region.
type International struct {
	region string
	raw    string
}

// NewInternational creates an International formatter with the given
// default region (ISO 3166-1 alpha-2, e.g. "US", "MX").
func NewInternational(region string) *International {
	return &International{region: region}
}

// SetNumber stores the raw value.
func (f *International) SetNumber(raw string) { f.raw = raw }

// Number returns the E.164 form of the stored value, or the raw value
// unchanged if it does not parse as a phone number. Unparseable input is
// the user's to fix, not ours to drop.
func (f *International) Number() string {
	if f.raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(f.raw, f.region)
	if err != nil {
		return f.raw
	}
	if !phonenumbers.IsValidNumber(num) {
		return f.raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
