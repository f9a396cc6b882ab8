package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// LoadICS reads and parses an iCalendar file.
func LoadICS(path string) ([]ParsedEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseICS(f)
}

// ParseICS parses every VEVENT in r. Timed values keep their TZID zone;
// floating times are read in the local zone.
func ParseICS(r io.Reader) ([]ParsedEvent, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var out []ParsedEvent
	for i, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			return nil, fmt.Errorf("vevent %d: %w", i+1, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseVEvent(ve *ical.VEvent) (ParsedEvent, error) {
	var ev ParsedEvent
	ev.UID = ve.Id()
	ev.Summary = propValue(ve, ical.ComponentPropertySummary)
	ev.Description = propValue(ve, ical.ComponentPropertyDescription)
	ev.Location = propValue(ve, ical.ComponentPropertyLocation)
	ev.RRule = propValue(ve, ical.ComponentPropertyRrule)
	ev.Status = strings.ToUpper(propValue(ve, ical.ComponentPropertyStatus))
	ev.Override = ve.GetProperty(ical.ComponentPropertyRecurrenceId) != nil

	if p := propValue(ve, ical.ComponentPropertyPriority); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return ev, fmt.Errorf("PRIORITY %q: %w", p, err)
		}
		ev.Priority = n
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, errors.New("missing DTSTART")
	}
	ev.AllDay = isDateValue(dtStart)

	var err error
	if ev.AllDay {
		ev.Start, err = ve.GetAllDayStartAt()
	} else {
		ev.Start, err = ve.GetStartAt()
	}
	if err != nil {
		return ev, fmt.Errorf("DTSTART: %w", err)
	}

	switch {
	case ve.GetProperty(ical.ComponentPropertyDtEnd) != nil:
		if ev.AllDay {
			ev.End, err = ve.GetAllDayEndAt()
		} else {
			ev.End, err = ve.GetEndAt()
		}
		if err != nil {
			return ev, fmt.Errorf("DTEND: %w", err)
		}
	case propValue(ve, ical.ComponentPropertyDuration) != "":
		d, err := parseICalDuration(propValue(ve, ical.ComponentPropertyDuration))
		if err != nil {
			return ev, fmt.Errorf("DURATION: %w", err)
		}
		ev.End = ev.Start.Add(d)
	case ev.AllDay:
		ev.End = ev.Start.AddDate(0, 0, 1)
	default:
		ev.End = ev.Start
	}

	if t, err := ve.GetDtStampTime(); err == nil {
		ev.Created = t
	}
	if t, err := ve.GetLastModifiedAt(); err == nil {
		ev.Modified = t
	}
	return ev, nil
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return strings.TrimSpace(prop.Value)
	}
	return ""
}

// isDateValue reports whether a DTSTART carries a date without a time.
func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICalDuration parses RFC 5545 durations such as PT1H30M, P1D or P2W.
// Negative durations are rejected.
func parseICalDuration(s string) (time.Duration, error) {
	v := strings.ToUpper(strings.TrimPrefix(s, "+"))
	if strings.HasPrefix(v, "-") || !strings.HasPrefix(v, "P") {
		return 0, fmt.Errorf("unsupported duration %q", s)
	}
	v = v[1:]

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
			continue
		case r == 'T':
			inTime = true
			continue
		}
		if num == "" {
			return 0, fmt.Errorf("malformed duration %q", s)
		}
		n, _ := strconv.Atoi(num)
		num = ""
		unit := time.Duration(n)
		switch {
		case r == 'W' && !inTime:
			total += unit * 7 * 24 * time.Hour
		case r == 'D' && !inTime:
			total += unit * 24 * time.Hour
		case r == 'H' && inTime:
			total += unit * time.Hour
		case r == 'M' && inTime:
			total += unit * time.Minute
		case r == 'S' && inTime:
			total += unit * time.Second
		default:
			return 0, fmt.Errorf("malformed duration %q", s)
		}
	}
	if num != "" {
		return 0, fmt.Errorf("malformed duration %q", s)
	}
	return total, nil
}
