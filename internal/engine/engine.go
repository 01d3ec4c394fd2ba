package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-hebcal/internal/config"
	"github.com/tartampluch/go-hebcal/internal/hebrew"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath       string // Absolute path to the .vcf file
	WebURL          string // CardDAV or WebDAV URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// Generator turns a vCard contact stream into a Hebrew-anniversary calendar:
// each birthday is converted to its Hebrew date and projected back onto the
// Gregorian dates where that Hebrew date recurs.
type Generator struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.

	// FormatSummary allows localized event summaries to be injected without
	// coupling the generator to the i18n layer.
	FormatSummary func(name, hebrewLabel string, age int, yearKnown bool) string
}

// RunSync executes the fetching, parsing, conversion and generation pipeline.
// It returns the ICS data, the list of entries, the count of anniversaries
// falling today, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []AnniversaryEntry, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	ics, entries, count, err := g.generateCalendar(ctx, reader, cfg.ReminderTrigger)

	if err == nil {
		log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, entries, count, err
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// generateCalendar parses the vCard stream, converts every birthday to its
// Hebrew date and constructs the iCalendar object.
func (g *Generator) generateCalendar(ctx context.Context, r io.Reader, reminderTrigger string) ([]byte, []AnniversaryEntry, int, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Local time decides "today"; UTC is only for ICS stamping. An
	// anniversary is defined by the local calendar date, not a UTC instant.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	// The Hebrew year containing "today" anchors the projection window.
	hebrewNow, err := hebrewDateOf(now)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrConversion, err)
	}

	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, converted, today int }{0, 0, 0}
	var entries []AnniversaryEntry

	for {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log and continue to the next card to maximize data recovery.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		birthHebrew, label, err := hebrewBirth(birthDate)
		if err != nil {
			slog.Debug(config.MsgSkippedRange,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value,
				config.LogKeyError, err)
			continue
		}
		stats.converted++

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		// Deterministic UID generation for stability across refreshes.
		input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(time.RFC3339), config.UIDSalt)
		hash := sha256.Sum256([]byte(input))
		uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

		nextOcc, ageNext := g.nextOccurrence(now, hebrewNow.Year, birthHebrew, yearKnown)

		entries = append(entries, AnniversaryEntry{
			UID:            uidBase,
			Name:           name,
			DateOfBirth:    birthDate,
			YearKnown:      yearKnown,
			Hebrew:         birthHebrew,
			HebrewLabel:    label,
			NextOccurrence: nextOcc,
			AgeNext:        ageNext,
		})

		events, isToday := g.createEvents(name, birthHebrew, label, yearKnown, reminderTrigger, now, hebrewNow.Year, uidBase)
		if isToday {
			stats.today++
			slog.Info(config.MsgAnnivToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyHebrew, label)
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		var buf bytes.Buffer
		// A valid VCALENDAR must be returned even when empty so clients do
		// not flag the feed as broken.
		fmt.Fprintf(&buf, config.StubVCalendar)

		g.logSuccess(stats)
		return buf.Bytes(), entries, 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), entries, stats.today, nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats struct{ processed, converted, today int }) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.converted),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}

// createEvents generates events for the previous, current and next Hebrew
// year relative to "now", so calendar clients that scroll a year in either
// direction see the anniversary without an immediate re-sync. No event is
// created before the person is born.
func (g *Generator) createEvents(name string, birth hebrew.Date, label string, yearKnown bool, reminderTrigger string, now time.Time, hebrewYearNow int, uidBase string) ([]*ical.Event, bool) {
	var events []*ical.Event
	isToday := false

	todayYear, todayMonth, todayDay := now.Date()

	for _, hy := range []int{hebrewYearNow - 1, hebrewYearNow, hebrewYearNow + 1} {
		if yearKnown && hy < birth.Year {
			continue
		}

		occurrence, err := occurrenceInYear(hy, birth)
		if err != nil {
			slog.Warn(config.MsgSkippedRange,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyError, err)
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, hy, config.ICalDomain))

		age := 0
		if yearKnown {
			age = hy - birth.Year
		}

		summary := fmt.Sprintf(config.FallbackSummary, name)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(name, label, age, yearKnown && age >= 0)
		}
		event.Props.SetText(config.PropSummary, summary)

		eventDate := time.Date(occurrence.Year, time.Month(occurrence.Month), occurrence.Day, 0, 0, 0, 0, now.Location())

		if eventDate.Year() == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

// nextOccurrence determines the Gregorian date of the next Hebrew
// anniversary relative to 'now', the primary sorting key for entry lists.
func (g *Generator) nextOccurrence(now time.Time, hebrewYearNow int, birth hebrew.Date, yearKnown bool) (time.Time, int) {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	for _, hy := range []int{hebrewYearNow, hebrewYearNow + 1} {
		occurrence, err := occurrenceInYear(hy, birth)
		if err != nil {
			continue
		}
		candidate := time.Date(occurrence.Year, time.Month(occurrence.Month), occurrence.Day, 0, 0, 0, 0, loc)
		if candidate.Before(todayStart) {
			continue
		}

		ageNext := 0
		if yearKnown {
			ageNext = hy - birth.Year
		}
		return candidate, ageNext
	}
	return time.Time{}, 0
}

// occurrenceInYear maps a Hebrew birth date onto the Hebrew year hy and
// returns the Gregorian date it falls on. Two adjustments follow standard
// anniversary practice: an Adar II birth falls back to Adar in common years
// (and a common-year Adar birth moves to Adar II in leap years), and the
// 30th of a variable-length month clamps to the 29th when the target year
// runs short.
func occurrenceInYear(hy int, birth hebrew.Date) (hebrew.GregorianDate, error) {
	months, err := hebrew.MonthLengths(hy)
	if err != nil {
		return hebrew.GregorianDate{}, err
	}

	month := birth.Month
	targetLeap := hebrew.IsLeapYear(hy)
	switch {
	case month == hebrew.MonthAdarII && !targetLeap:
		month = hebrew.MonthAdar
	case month == hebrew.MonthAdar && targetLeap && !hebrew.IsLeapYear(birth.Year):
		month = hebrew.MonthAdarII
	}

	day := birth.Day
	for _, m := range months {
		if m.Month == month && day > m.Days {
			day = m.Days
		}
	}

	jdn, err := hebrew.ToJDN(hebrew.Date{Year: hy, Month: month, Day: day})
	if err != nil {
		return hebrew.GregorianDate{}, err
	}
	return hebrew.ToGregorian(jdn)
}

// hebrewBirth converts a Gregorian birth date to its Hebrew date and the
// day-and-month label used in summaries (e.g. "5 Iyar").
func hebrewBirth(birthDate time.Time) (hebrew.Date, string, error) {
	res, err := hebrew.GregorianToHebrew(birthDate.Year(), int(birthDate.Month()), birthDate.Day())
	if err != nil {
		return hebrew.Date{}, "", err
	}
	date := hebrew.Date{Year: res.Year, Month: res.Month, Day: res.Day}
	label := fmt.Sprintf("%d %s", res.Day, res.MonthName)
	return date, label, nil
}

// hebrewDateOf converts a wall-clock time to the Hebrew date of its local
// calendar day.
func hebrewDateOf(t time.Time) (hebrew.Date, error) {
	res, err := hebrew.GregorianToHebrew(t.Year(), int(t.Month()), t.Day())
	if err != nil {
		return hebrew.Date{}, err
	}
	return hebrew.Date{Year: res.Year, Month: res.Month, Day: res.Day}, nil
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// parseDate handles the vCard date formats seen in the wild.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific.
	// Safe leap year fallback.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
