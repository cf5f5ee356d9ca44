package format

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale bundles the language-dependent pieces of presentation: number
// grouping, clock layout, month names and translated UI strings.
type Locale struct {
	name       string
	tag        language.Tag
	clock      string
	months     [12]string
	monthFirst bool
	loc        *time.Location
	printer    *message.Printer
}

// DefaultLocaleName is used when no locale is configured.
const DefaultLocaleName = "id-ID"

var locales = map[string]Locale{
	"id-ID": {
		name:   "id-ID",
		tag:    language.MustParse("id-ID"),
		clock:  "15.04",
		months: [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
	},
	"en-US": {
		name:       "en-US",
		tag:        language.AmericanEnglish,
		clock:      "03:04 PM",
		months:     [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		monthFirst: true,
	},
}

// LookupLocale returns the locale registered under a BCP 47 name such as "id-ID".
func LookupLocale(name string) (Locale, error) {
	l, ok := locales[name]
	if !ok {
		return Locale{}, fmt.Errorf("unsupported locale %q", name)
	}
	l.printer = message.NewPrinter(l.tag)
	l.loc = time.Local
	return l, nil
}

// DefaultLocale returns the id-ID locale.
func DefaultLocale() Locale {
	l, _ := LookupLocale(DefaultLocaleName)
	return l
}

// In returns a copy of l that renders times in loc.
func (l Locale) In(loc *time.Location) Locale {
	if loc != nil {
		l.loc = loc
	}
	return l
}

// Name is the BCP 47 name the locale was looked up by.
func (l Locale) Name() string { return l.name }

// Location is the time zone used for labels.
func (l Locale) Location() *time.Location {
	if l.loc == nil {
		return time.Local
	}
	return l.loc
}

// Clock renders t as locale hour:minute.
func (l Locale) Clock(t time.Time) string {
	return t.In(l.Location()).Format(l.clock)
}

// ShortDate renders t as locale day and abbreviated month.
func (l Locale) ShortDate(t time.Time) string {
	t = t.In(l.Location())
	day := strconv.Itoa(t.Day())
	month := l.months[t.Month()-1]
	if l.monthFirst {
		return month + " " + day
	}
	return day + " " + month
}

// Price renders v with locale digit grouping and at most three fraction digits.
func (l Locale) Price(v float64) string {
	return l.p().Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// T translates a UI string, formatting args into it.
func (l Locale) T(key string, args ...any) string {
	return l.p().Sprintf(key, args...)
}

func (l Locale) p() *message.Printer {
	if l.printer == nil {
		return message.NewPrinter(l.tag)
	}
	return l.printer
}

// TimeLabel renders a chart label: hour:minute for a one-day range, day and
// month otherwise.
func TimeLabel(t time.Time, rangeDays int, l Locale) string {
	if rangeDays == 1 {
		return l.Clock(t)
	}
	return l.ShortDate(t)
}
