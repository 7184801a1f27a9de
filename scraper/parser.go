package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

// CandidateSong is a playlist entry as extracted from the page, before
// validation. Date and Time are raw "MM/DD" and "HH:MM" tokens.
type CandidateSong struct {
	Date   string
	Time   string
	Artist string
	Title  string
	Album  string
}

// Strategy is one way of reading song rows out of the page. Strategies
// are tried in order; the first one that yields any candidate wins
// entirely, even if a later strategy would have found more.
type Strategy struct {
	Name    string
	Extract func(doc *goquery.Document, now time.Time) []CandidateSong
}

// Parser turns raw playlist markup into candidate songs. The page's
// structure is not a stable contract, so extraction is layered: several
// independent strategies, first non-empty result wins.
type Parser struct {
	strategies []Strategy
}

func NewParser() *Parser {
	return &Parser{
		strategies: []Strategy{
			{Name: "table-rows", Extract: extractTableRows},
			{Name: "dated-lines", Extract: extractDatedLines},
			{Name: "split-lines", Extract: extractSplitLines},
		},
	}
}

// Parse never fails: unreadable markup or a page with no recognizable
// rows yields an empty candidate list. now supplies the calendar date
// stamped onto rows that carry only a time of day.
func (p *Parser) Parse(markup string, now time.Time) []CandidateSong {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		utils.Logger.Warnf("Error parsing playlist markup: %v", err)
		return nil
	}

	for _, strat := range p.strategies {
		candidates := dropNoise(strat.Extract(doc, now))
		if len(candidates) > 0 {
			utils.Logger.Debugf("Strategy %s extracted %d candidates", strat.Name, len(candidates))
			return candidates
		}
	}
	utils.Logger.Debug("No parsing strategy matched the playlist page")
	return nil
}

var (
	timeCellRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	// "MM/DD HH:MM Title / Artist" with an optional "/ Album" tail.
	datedLineRe = regexp.MustCompile(`^(\d{2}/\d{2})\s+(\d{1,2}:\d{2})\s+(.+?)\s+/\s+(.+?)(?:\s+/\s+(.+))?$`)
	bareDateRe  = regexp.MustCompile(`^(\d{2}/\d{2})\s+(\d{1,2}:\d{2})$`)
)

// rowSelectors are tried in priority order; the first selector whose
// rows produce at least one candidate is used.
var rowSelectors = []string{
	"table.playlist tr",
	"table#playlist tr",
	"div.playlist tr",
	"table tr",
}

// extractTableRows reads rows from one of the known table layouts: a
// cell holding the play time and an "Artist - Title" link or cell.
func extractTableRows(doc *goquery.Document, now time.Time) []CandidateSong {
	date := now.Format("01/02")
	for _, selector := range rowSelectors {
		var candidates []CandidateSong
		doc.Find(selector).Each(func(_ int, row *goquery.Selection) {
			var timeToken string
			var textCells []string
			row.Find("td").Each(func(_ int, cell *goquery.Selection) {
				cellText := strings.TrimSpace(cell.Text())
				if timeToken == "" && timeCellRe.MatchString(cellText) {
					timeToken = cellText
					return
				}
				if cellText != "" {
					textCells = append(textCells, cellText)
				}
			})
			if timeToken == "" {
				return
			}

			// Prefer the song link's text; fall back to the remaining
			// cell text.
			text := strings.TrimSpace(row.Find("a").First().Text())
			if text == "" {
				text = strings.Join(textCells, " ")
			}

			artist, title, ok := splitArtistTitle(text)
			if !ok {
				return
			}
			candidates = append(candidates, CandidateSong{
				Date:   date,
				Time:   timeToken,
				Artist: artist,
				Title:  title,
			})
		})
		if len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

// extractDatedLines reads the plain-text layout the station has used in
// the past: one "MM/DD HH:MM Title / Artist / Album" line per song.
func extractDatedLines(doc *goquery.Document, _ time.Time) []CandidateSong {
	var candidates []CandidateSong
	for _, line := range bodyLines(doc) {
		m := datedLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		candidates = append(candidates, CandidateSong{
			Date:   m[1],
			Time:   m[2],
			Artist: strings.TrimSpace(m[4]),
			Title:  strings.TrimSpace(m[3]),
			Album:  strings.TrimSpace(m[5]),
		})
	}
	return candidates
}

// extractSplitLines handles the variant where the "MM/DD HH:MM" stamp
// sits on its own line and "Title / Artist / Album" follows on the next.
func extractSplitLines(doc *goquery.Document, _ time.Time) []CandidateSong {
	var candidates []CandidateSong
	lines := bodyLines(doc)
	for i := 0; i < len(lines); i++ {
		m := bareDateRe.FindStringSubmatch(lines[i])
		if m == nil || i+1 >= len(lines) {
			continue
		}
		parts := strings.Split(lines[i+1], " / ")
		if len(parts) < 2 {
			continue
		}
		c := CandidateSong{
			Date:   m[1],
			Time:   m[2],
			Artist: strings.TrimSpace(parts[1]),
			Title:  strings.TrimSpace(parts[0]),
		}
		if len(parts) > 2 {
			c.Album = strings.TrimSpace(parts[2])
		}
		candidates = append(candidates, c)
		i++ // consumed the following line
	}
	return candidates
}

func bodyLines(doc *goquery.Document) []string {
	var lines []string
	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// splitArtistTitle splits "Artist - Title" on the first " - ". A title
// containing further separators keeps them: "A - B - C" is artist "A",
// title "B - C".
func splitArtistTitle(text string) (artist, title string, ok bool) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	artist = strings.TrimSpace(parts[0])
	title = strings.TrimSpace(parts[1])
	if artist == "" || title == "" {
		return "", "", false
	}
	return artist, title, true
}

var showLabelRe = regexp.MustCompile(`(?i)^with\s+\S+`)

// dropNoise removes rows that are not songs: station identification,
// promo markers, and "with <host>" show labels.
func dropNoise(candidates []CandidateSong) []CandidateSong {
	kept := candidates[:0]
	for _, c := range candidates {
		if isNoise(c.Artist) || isNoise(c.Title) {
			utils.Logger.Debugf("Dropping non-song row: %s - %s", c.Artist, c.Title)
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func isNoise(field string) bool {
	lower := strings.ToLower(field)
	if strings.Contains(lower, "wtmd") {
		return true
	}
	if strings.Contains(lower, "total music discovery") {
		return true
	}
	return showLabelRe.MatchString(field)
}
