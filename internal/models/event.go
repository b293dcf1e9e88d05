package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DisplayLayout is the timestamp layout used by the text and csv log formats
// and by the human-readable rendering of an event.
const DisplayLayout = "2006-01-02 15:04:05"

// actorSeparator ends the actor field of a display line; an actor holding it
// would not decode back to itself.
const actorSeparator = ": "

var (
	ErrEmptyActor   = errors.New("actor is empty")
	ErrInvalidActor = errors.New("actor is not loggable")
	ErrEmptyText    = errors.New("message is empty")
)

// Event is one accepted shoutout. Timestamp is always UTC.
type Event struct {
	Timestamp time.Time
	Actor     string
	Text      string
}

// Display renders the event as "[YYYY-MM-DD HH:MM:SS] actor: text" in loc.
func (e Event) Display(loc *time.Location) string {
	var b strings.Builder
	b.Grow(len(DisplayLayout) + len(e.Actor) + len(e.Text) + 5)
	b.WriteByte('[')
	b.WriteString(e.Timestamp.In(loc).Format(DisplayLayout))
	b.WriteString("] ")
	b.WriteString(e.Actor)
	b.WriteString(": ")
	b.WriteString(e.Text)
	return b.String()
}

// Sanitize normalizes raw to NFC, drops control characters, trims surrounding
// whitespace and truncates the result to maxRunes runes.
func Sanitize(raw string, maxRunes int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, norm.NFC.String(raw))
	cleaned = strings.TrimSpace(cleaned)

	if maxRunes > 0 {
		n := 0
		for i := range cleaned {
			if n == maxRunes {
				return strings.TrimSpace(cleaned[:i])
			}
			n++
		}
	}
	return cleaned
}

func ValidateActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return ErrEmptyActor
	}
	if strings.ContainsFunc(actor, unicode.IsControl) {
		return fmt.Errorf("%w: control characters", ErrInvalidActor)
	}
	if strings.Contains(actor, actorSeparator) {
		return fmt.Errorf("%w: contains %q", ErrInvalidActor, actorSeparator)
	}
	return nil
}
