// Package vcf reads birthday entries out of a vCard stream so address-book
// exports can seed the local list.
package vcf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

// Entry is one importable contact: a name plus a full birth date.
type Entry struct {
	Name string
	Date string // "2006-01-02"
}

// ReadEntries decodes the stream and returns every contact carrying a BDAY
// with a known year. Malformed cards and year-less dates (the "--05-20"
// vCard form) are skipped with a log line; the record model requires a birth
// year because the remote event title embeds it.
func ReadEntries(r io.Reader) ([]Entry, error) {
	decoder := vcard.NewDecoder(r)
	var entries []Entry

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Continue to the next card to maximize data recovery.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyError, err,
			)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := parseFullDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyValue, bday.Value,
			)
			continue
		}

		// Name strategy: FN (formatted) > N (structured); no fallback name,
		// a record needs something to put in the event title.
		var name string
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}
		if name == "" {
			slog.Debug(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyValue, bday.Value,
			)
			continue
		}

		entries = append(entries, Entry{
			Name: name,
			Date: birth.Format(config.DateFormatFullDash),
		})
	}

	return entries, nil
}

// parseFullDate accepts the vCard date layouts that include a year.
func parseFullDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
