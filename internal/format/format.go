// Package format renders money, dates and counts for the back-office views.
// Locale, clock and timezone are explicit so output is reproducible.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown in place of a missing or unparseable value.
const Placeholder = "—"

// Locale selects digit grouping for rendered numbers.
type Locale struct {
	tag language.Tag
}

// EnUS is the locale every back-office view is rendered in.
var EnUS = Locale{tag: language.AmericanEnglish}

// ParseLocale parses a BCP 47 tag such as "en-US", falling back to EnUS.
func ParseLocale(s string) Locale {
	tag, err := language.Parse(s)
	if err != nil {
		return EnUS
	}
	return Locale{tag: tag}
}

func (l Locale) Tag() language.Tag { return l.tag }

func (l Locale) String() string { return l.tag.String() }

func (l Locale) printer() *message.Printer {
	return message.NewPrinter(l.tag)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Formatter renders values for one locale, clock and timezone. It holds no
// mutable state and is safe for concurrent use.
type Formatter struct {
	locale   Locale
	clock    Clock
	location *time.Location
}

type Option func(*Formatter)

func WithLocale(l Locale) Option {
	return func(f *Formatter) { f.locale = l }
}

func WithClock(c Clock) Option {
	return func(f *Formatter) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithLocation sets the timezone calendar days and clock times are shown in.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

// New returns an en-US Formatter on the system clock in time.Local unless
// overridden by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		locale:   EnUS,
		clock:    SystemClock{},
		location: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) Locale() Locale { return f.locale }

func (f *Formatter) Location() *time.Location { return f.location }

// Now is the clock's current instant in the formatter's timezone.
func (f *Formatter) Now() time.Time {
	return f.clock.Now().In(f.location)
}
