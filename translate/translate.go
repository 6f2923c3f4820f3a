// Package translate renders diagnostic and error messages for the user's
// locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is used when the environment names no locale.
var Fallback = language.AmericanEnglish

var printer *message.Printer

func init() {
	printer = message.NewPrinter(Language())
}

// Language returns the best match for the user's locales.
func Language() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("basicmachine: locale: %v", err)
	}

	if len(locales) == 0 {
		return Fallback
	}

	return message.MatchLanguage(locales...)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
