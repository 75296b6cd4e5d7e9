package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"toursync/internal/models/db_models"
	"toursync/pkg/utils"
)

// ParseTourDocument turns one Outline tour document into a Tour record.
// Pure: no I/O, no clock. The only hard requirement is the "CODE - Name"
// title; every other field is optional and extracted independently, so one
// malformed section never poisons the rest of the record.
func ParseTourDocument(doc OutlineDocument) (*db_models.Tour, error) {
	code, name, ok := extractTitle(doc.Title)
	if !ok {
		return nil, fmt.Errorf(`%w: title %q does not match "CODE - Name"`, utils.ErrParseFailure, doc.Title)
	}

	tour := &db_models.Tour{
		TourCode:  code,
		OutlineID: doc.ID,
		Name:      name,
		IsActive:  true,
	}

	// Live spans go first, before any section boundary is computed: the sync
	// process writes its own headings inside those blocks, and a generated
	// heading must not terminate an operator-authored section early.
	text := stripLiveSpans(doc.Text)

	if desc := extractDescription(text); desc != "" {
		tour.Description = &desc
	}

	tour.ArcticID, tour.WordpressURL = extractReferenceIDs(text)

	// Scope the key/value rows to the Tour Details table when the heading
	// exists, so identically-labeled cells elsewhere cannot shadow them.
	details := text
	if section := extractSection(text, `Tour Details`); section != "" {
		details = section
	}

	tour.Region = detailRow(details, "Region")
	tour.TourType = firstNonNil(detailRow(details, "Style"), detailRow(details, "Tour Type"))
	if skill := detailRow(details, "Skill Level"); skill != nil {
		// Source values read like "Intermediate, some singletrack"; only the
		// first token is the difficulty rating.
		difficulty := strings.TrimSpace(strings.SplitN(*skill, ",", 2)[0])
		if difficulty != "" {
			tour.Difficulty = &difficulty
		}
	}
	if duration := detailRow(details, "Duration"); duration != nil {
		tour.Duration = duration
		tour.DurationDays, tour.DurationNights = parseDuration(*duration)
	}
	if season := detailRow(details, "Season"); season != nil {
		tour.SeasonStart, tour.SeasonEnd = parseSeason(*season)
	}

	tour.MeetingInfo = extractCleanSection(text, `Meeting Info(?:rmation)?`)
	tour.PackingList = extractCleanSection(text, `What to Bring`)
	tour.Itinerary = extractCleanSection(text, `(?:Day-by-Day\s+)?Itinerary`)
	tour.BookingNotes = extractCleanSection(text, `Booking(?:\s+Notes)?`)

	tour.MarketingCopies = extractMarketingCopies(text)

	tour.PriceRange = computePriceRange(tour.DurationDays)
	tour.HasEbike = matchesEbike(doc.Title) || matchesEbike(deref(tour.TourType))
	tour.IsPrivate = matchesPrivate(doc.Title) || matchesPrivate(deref(tour.TourType))

	return tour, nil
}

var (
	titleRe = regexp.MustCompile(`^\s*([A-Za-z0-9][\w.+]*)\s*[-–]\s*(.+?)\s*$`)

	arcticIDRe  = regexp.MustCompile(`(?i)\|\s*Arctic\s*\|\s*tt(\d+)\s*\|`)
	wordpressRe = regexp.MustCompile(`(?i)\|\s*WordPress\s*\|\s*<?(https?://[^\s|>]+)>?\s*\|`)

	liveSectionRe = regexp.MustCompile(`(?s)<!--\s*ARCTIC_SYNC:[\w-]+\s*-->.*?<!--\s*/ARCTIC_SYNC\s*-->`)
	liveOpenRe    = regexp.MustCompile(`<!--\s*ARCTIC_SYNC:[\w-]+\s*-->`)
	liveCloseRe   = regexp.MustCompile(`<!--\s*/ARCTIC_SYNC\s*-->`)
	placeholderRe = regexp.MustCompile(`<!--\s*/?(?:CONTENT|FIELD|ITINERARY_DAY|AB_TEST)(?::[\w-]+)?\s*-->`)
	blankRunsRe   = regexp.MustCompile(`\n{3,}`)

	marketingRowRe = regexp.MustCompile(`^\|\s*\*\*(.+?)\*\*\s*\|\s*(.*?)\s*\|$`)
	lineBreakTagRe = regexp.MustCompile(`(?i)<br\s*/?>`)

	durationRe = regexp.MustCompile(`(?i)^\s*(\d+)\s*-\s*Day(?:s)?(?:\s*/\s*(\d+)\s*-\s*Night(?:s)?)?\s*$`)

	ebikeRe   = regexp.MustCompile(`(?i)\be-?bike\b`)
	privateRe = regexp.MustCompile(`(?i)\bprivate\b`)
)

func extractTitle(title string) (code string, name string, ok bool) {
	m := titleRe.FindStringSubmatch(title)
	if m == nil {
		return "", "", false
	}
	name = strings.TrimSpace(m[2])
	if name == "" {
		return "", "", false
	}
	return m[1], name, true
}

// extractDescription returns the leading blockquote: the quote sitting at
// the top of the document (an initial H1 line is tolerated) before any other
// content. Documents without one fall back to a "Description" section.
func extractDescription(text string) string {
	var quote []string
	sawH1 := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, ">"):
			quote = append(quote, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
		case len(quote) > 0:
			// blockquote ended
			return strings.TrimSpace(strings.Join(quote, "\n"))
		case trimmed == "" || trimmed == "---":
			continue
		case strings.HasPrefix(trimmed, "# ") && !sawH1:
			sawH1 = true
		default:
			// real content before any blockquote
			if section := extractCleanSection(text, `Description`); section != nil {
				return *section
			}
			return ""
		}
	}
	return strings.TrimSpace(strings.Join(quote, "\n"))
}

func extractReferenceIDs(text string) (arcticID *int, wordpressURL *string) {
	if m := arcticIDRe.FindStringSubmatch(text); m != nil {
		if id, err := strconv.Atoi(m[1]); err == nil {
			arcticID = &id
		}
	}
	if m := wordpressRe.FindStringSubmatch(text); m != nil {
		url := m[1]
		wordpressURL = &url
	}
	return arcticID, wordpressURL
}

// detailRow pulls one value out of a two-column table by row label,
// tolerating bolding, trailing colons and loose whitespace.
func detailRow(text string, label string) *string {
	re := regexp.MustCompile(`(?i)\|\s*\**\s*` + regexp.QuoteMeta(label) + `\s*:?\s*\**\s*\|\s*([^|\n]+?)\s*\|`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value := strings.TrimSpace(strings.Trim(m[1], "*"))
	if value == "" || value == "-" {
		return nil
	}
	return &value
}

func parseDuration(raw string) (days *int, nights *int) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "half day", "full day":
		d, n := 1, 0
		return &d, &n
	}

	m := durationRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil
	}

	d, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, nil
	}

	// "4-Day/3-Night" is explicit; a bare "5-Day" implies N-1 nights.
	n := d - 1
	if m[2] != "" {
		if parsed, err := strconv.Atoi(m[2]); err == nil {
			n = parsed
		}
	}
	return &d, &n
}

// parseSeason: first comma-separated token is the start, the last the end.
// A single value yields start == end; that is deliberate, not a bug.
func parseSeason(raw string) (start *string, end *string) {
	parts := strings.Split(raw, ",")
	first := strings.TrimSpace(parts[0])
	last := strings.TrimSpace(parts[len(parts)-1])
	if first == "" {
		return nil, nil
	}
	if last == "" {
		last = first
	}
	return &first, &last
}

// extractSection captures everything under a heading up to the next heading
// of the same (or shallower) level, or end of document.
func extractSection(text string, headingPattern string) string {
	re := regexp.MustCompile(`(?mi)^(#{1,6})\s*` + headingPattern + `\s*:?\s*$`)
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}

	level := loc[3] - loc[2]
	rest := text[loc[1]:]

	endRe := regexp.MustCompile(fmt.Sprintf(`(?m)^#{1,%d}\s`, level))
	if end := endRe.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return strings.TrimSpace(rest)
}

// stripLiveSpans removes every ARCTIC_SYNC block from the document. That
// data is recomputed live and never persisted; content on either side of a
// span is kept. An unclosed opener runs to end of document, and a stray
// closer is dropped.
func stripLiveSpans(text string) string {
	text = liveSectionRe.ReplaceAllString(text, "")
	if loc := liveOpenRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return liveCloseRe.ReplaceAllString(text, "")
}

// extractCleanSection extracts a section and strips the placeholder marker
// tokens, keeping their inner content.
func extractCleanSection(text string, headingPattern string) *string {
	section := extractSection(text, headingPattern)
	if section == "" {
		return nil
	}

	section = placeholderRe.ReplaceAllString(section, "")
	section = blankRunsRe.ReplaceAllString(section, "\n\n")
	section = strings.TrimSpace(section)

	if section == "" {
		return nil
	}
	return &section
}

// extractMarketingCopies reads the "Marketing Copy Variations" table: bolded
// first cell is the style, second cell the copy. Escaped pipes and <br>
// markup in the copy become literal characters.
func extractMarketingCopies(text string) []db_models.MarketingCopy {
	section := extractSection(text, `Marketing Copy(?:\s+Variations)?`)
	if section == "" {
		return nil
	}

	var copies []db_models.MarketingCopy
	for _, line := range strings.Split(section, "\n") {
		m := marketingRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		copies = append(copies, db_models.MarketingCopy{
			Style:       strings.TrimSpace(m[1]),
			Description: normalizeTableCell(m[2]),
			Position:    len(copies),
		})
	}
	return copies
}

func normalizeTableCell(cell string) string {
	cell = lineBreakTagRe.ReplaceAllString(cell, "\n")
	cell = strings.ReplaceAll(cell, `\|`, "|")
	return strings.TrimSpace(cell)
}

// computePriceRange is a coarse heuristic bucket from duration alone.
// Real pricing lives in Arctic and is fetched live.
func computePriceRange(durationDays *int) *string {
	if durationDays == nil {
		return nil
	}

	var bucket string
	switch days := *durationDays; {
	case days <= 1:
		bucket = "$"
	case days <= 2:
		bucket = "$$"
	case days <= 4:
		bucket = "$$$"
	case days <= 5:
		bucket = "$$$$"
	default:
		bucket = "$$$$$"
	}
	return &bucket
}

func matchesEbike(s string) bool   { return ebikeRe.MatchString(s) }
func matchesPrivate(s string) bool { return privateRe.MatchString(s) }

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
