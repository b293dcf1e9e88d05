package models

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
	FormatCSV  LogFormat = "csv"
)

var (
	ErrUnknownFormat = errors.New("unknown log format")
	ErrMalformedLine = errors.New("malformed log line")
)

// ParseLogFormat accepts the configured names plus the legacy "txt" alias.
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Codec turns an event into exactly one newline-terminated line and back.
type Codec interface {
	Format() LogFormat
	Encode(e Event) ([]byte, error)
	Decode(line string) (Event, error)
}

func NewCodec(format LogFormat, loc *time.Location) (Codec, error) {
	if loc == nil {
		loc = time.Local
	}
	switch format {
	case FormatText:
		return &textCodec{loc: loc}, nil
	case FormatJSON:
		return &jsonCodec{loc: loc}, nil
	case FormatCSV:
		return &csvCodec{loc: loc}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

type textCodec struct {
	loc *time.Location
}

func (c *textCodec) Format() LogFormat { return FormatText }

func (c *textCodec) Encode(e Event) ([]byte, error) {
	return []byte(e.Display(c.loc) + "\n"), nil
}

func (c *textCodec) Decode(line string) (Event, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "[") {
		return Event{}, ErrMalformedLine
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return Event{}, ErrMalformedLine
	}
	ts, err := time.ParseInLocation(DisplayLayout, line[1:end], c.loc)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %s", ErrMalformedLine, err)
	}
	actor, text, ok := strings.Cut(line[end+2:], actorSeparator)
	if !ok || actor == "" {
		return Event{}, ErrMalformedLine
	}
	return Event{Timestamp: ts.UTC(), Actor: actor, Text: text}, nil
}

// jsonEntry mirrors the field names of logs written by earlier releases.
type jsonEntry struct {
	Timestamp  string `json:"timestamp"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}

type jsonEntryIn struct {
	Timestamp  string `json:"timestamp"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Actor      string `json:"actor"`
	Text       string `json:"text"`
}

type jsonCodec struct {
	loc *time.Location
}

func (c *jsonCodec) Format() LogFormat { return FormatJSON }

func (c *jsonCodec) Encode(e Event) ([]byte, error) {
	data, err := json.Marshal(jsonEntry{
		Timestamp:  e.Timestamp.UTC().Format(time.RFC3339Nano),
		PlayerName: e.Actor,
		Message:    e.Text,
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (c *jsonCodec) Decode(line string) (Event, error) {
	var in jsonEntryIn
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &in); err != nil {
		return Event{}, fmt.Errorf("%w: %s", ErrMalformedLine, err)
	}
	actor := in.PlayerName
	if actor == "" {
		actor = in.Actor
	}
	text := in.Message
	if text == "" {
		text = in.Text
	}
	if actor == "" {
		return Event{}, ErrMalformedLine
	}
	ts, err := ParseLooseTime(in.Timestamp, c.loc)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %s", ErrMalformedLine, err)
	}
	return Event{Timestamp: ts, Actor: actor, Text: text}, nil
}

type csvCodec struct {
	loc *time.Location
}

func (c *csvCodec) Format() LogFormat { return FormatCSV }

func (c *csvCodec) Encode(e Event) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{e.Timestamp.In(c.loc).Format(DisplayLayout), e.Actor, e.Text}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode tolerates unquoted legacy lines: fields past the second are the
// message split on its own commas, so they are joined back together.
func (c *csvCodec) Decode(line string) (Event, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return Event{}, fmt.Errorf("%w: %s", ErrMalformedLine, err)
	}
	if len(fields) < 3 || fields[1] == "" {
		return Event{}, ErrMalformedLine
	}
	ts, err := time.ParseInLocation(DisplayLayout, fields[0], c.loc)
	if err != nil {
		return Event{}, fmt.Errorf("%w: %s", ErrMalformedLine, err)
	}
	return Event{Timestamp: ts.UTC(), Actor: fields[1], Text: strings.Join(fields[2:], ",")}, nil
}

var looseLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	DisplayLayout,
}

// ParseLooseTime reads RFC 3339 timestamps and, for zone-less values written
// by older releases, interprets them in loc. The result is UTC.
func ParseLooseTime(s string, loc *time.Location) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), nil
	}
	for _, layout := range looseLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
