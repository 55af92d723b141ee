package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/service"
)

const (
	overviewWidth = 72
	castLimit     = 5
	relatedLimit  = 5
)

// Printer writes styled command output. Styles are dropped when color is
// disabled, so piped output stays plain text.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a printer for w. mode is "always", "never" or "auto";
// auto enables color only when w is a terminal.
func NewPrinter(w io.Writer, mode string) *Printer {
	return &Printer{w: w, color: colorEnabled(w, mode)}
}

func colorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Header prints a section heading
func (p *Printer) Header(text string) {
	p.println(p.style(HeaderStyle, text))
}

// Success prints a confirmation line
func (p *Printer) Success(format string, a ...any) {
	p.println(p.style(SuccessStyle, fmt.Sprintf(format, a...)))
}

// Error prints an error line
func (p *Printer) Error(err error) {
	p.println(p.style(ErrorStyle, "error: "+err.Error()))
}

// Empty prints the placeholder for an empty result
func (p *Printer) Empty(what string) {
	p.println(p.style(DimStyle, "no "+what))
}

// Titles prints one line per title
func (p *Printer) Titles(titles []domain.Title) {
	if len(titles) == 0 {
		p.Empty("titles")
		return
	}
	for _, t := range titles {
		p.println(p.titleLine(t))
	}
}

// Page prints a listing page with its position
func (p *Printer) Page(page domain.Page) {
	p.Titles(page.Results)
	if page.TotalPages > 1 {
		p.println(p.style(DimStyle, fmt.Sprintf("page %d of %d", page.Page, page.TotalPages)))
	}
}

func (p *Printer) titleLine(t domain.Title) string {
	var b strings.Builder
	b.WriteString(p.style(DimStyle, fmt.Sprintf("%-8d", t.ID)))
	b.WriteString(" ")
	b.WriteString(p.style(TitleStyle, t.Name))
	if year := t.ReleaseYear(); year > 0 {
		b.WriteString(p.style(SubtitleStyle, fmt.Sprintf(" (%d)", year)))
	}
	if t.Type != "" {
		b.WriteString(p.style(DimStyle, " ["+t.Type.String()+"]"))
	}
	if t.VoteAverage > 0 {
		b.WriteString(p.style(AccentStyle, fmt.Sprintf(" ★ %.1f", t.VoteAverage)))
	}
	return b.String()
}

// Detail prints a title's full record. progress is the saved position for
// movies or the series pointer for TV, if any.
func (p *Printer) Detail(d *domain.TitleDetail, progress *domain.WatchProgress) {
	p.println(p.titleLine(d.Title))
	if d.OriginalName != "" && d.OriginalName != d.Name {
		p.println(p.style(SubtitleStyle, d.OriginalName))
	}
	if genres := d.GenreNames(); len(genres) > 0 {
		p.println(p.style(DimStyle, strings.Join(genres, " · ")))
	}
	if d.Runtime > 0 {
		p.println(p.style(DimStyle, fmt.Sprintf("%d min", d.Runtime)))
	}
	if d.NumberOfSeasons > 0 {
		p.println(p.style(DimStyle, fmt.Sprintf("%d seasons", d.NumberOfSeasons)))
	}
	if d.Overview != "" {
		p.println()
		p.println(ansi.Wordwrap(d.Overview, overviewWidth, ""))
	}
	if progress != nil {
		p.println()
		p.println(p.progressLine(*progress))
	}
	for _, v := range d.Videos {
		if v.Site == "YouTube" && v.Key != "" {
			p.println()
			p.println(p.style(LinkStyle, "https://www.youtube.com/watch?v="+v.Key))
			break
		}
	}
	if len(d.Cast) > 0 {
		names := make([]string, 0, castLimit)
		for i, c := range d.Cast {
			if i == castLimit {
				break
			}
			names = append(names, c.Name)
		}
		p.println()
		p.println(p.style(SubtitleStyle, "Cast: "+strings.Join(names, ", ")))
	}
	p.related("Recommended", d.Recommendations)
	p.related("Similar", d.Similar)
}

func (p *Printer) related(label string, titles []domain.Title) {
	if len(titles) == 0 {
		return
	}
	if len(titles) > relatedLimit {
		titles = titles[:relatedLimit]
	}
	p.println()
	p.Header(label)
	p.Titles(titles)
}

// Season prints a season's episodes with their watch status
func (p *Printer) Season(s *domain.Season, progress map[int]domain.WatchProgress) {
	p.Header(s.DisplayTitle())
	if len(s.Episodes) == 0 {
		p.Empty("episodes")
		return
	}
	for _, ep := range s.Episodes {
		status := p.style(UnplayedStyle, UnplayedChar)
		if wp, ok := progress[ep.EpisodeNumber]; ok {
			switch {
			case wp.IsCompleted():
				status = p.style(PlayedStyle, PlayedChar)
			case wp.ProgressPercent > 0:
				status = p.style(InProgressStyle, InProgressChar)
			}
		}
		line := fmt.Sprintf("%s %s %s", status, p.style(DimStyle, ep.EpisodeCode()), p.style(TitleStyle, ep.Name))
		if ep.Runtime > 0 {
			line += p.style(DimStyle, fmt.Sprintf(" %dm", ep.Runtime))
		}
		p.println(line)
	}
}

// History prints watch history entries
func (p *Printer) History(entries []domain.WatchProgress) {
	if len(entries) == 0 {
		p.Empty("watch history")
		return
	}
	for _, wp := range entries {
		p.println(p.progressLine(wp))
	}
}

func (p *Printer) progressLine(wp domain.WatchProgress) string {
	status := p.style(InProgressStyle, InProgressChar)
	if wp.IsCompleted() {
		status = p.style(PlayedStyle, PlayedChar)
	} else if wp.ProgressPercent == 0 {
		status = p.style(UnplayedStyle, UnplayedChar)
	}

	label := fmt.Sprintf("%s %d", wp.MediaType, wp.TitleID)
	if wp.LastEpisode != nil {
		label += fmt.Sprintf(" S%02dE%02d", wp.LastEpisode.SeasonNumber, wp.LastEpisode.EpisodeNumber)
	}
	return fmt.Sprintf("%s %s %s %s",
		status,
		p.style(TitleStyle, label),
		p.style(AccentStyle, fmt.Sprintf("%5.1f%%", wp.ProgressPercent)),
		p.style(DimStyle, wp.LastWatchedAt.Local().Format("2006-01-02 15:04")))
}

// Stats prints aggregate watch statistics
func (p *Printer) Stats(s domain.WatchStats) {
	rows := []struct {
		label string
		value int
	}{
		{"Titles", s.TotalItems},
		{"Movies", s.MoviesCount},
		{"Series", s.ShowsCount},
		{"Completed", s.CompletedCount},
		{"In progress", s.InProgressCount},
		{"Minutes watched", s.WatchedMinutes},
		{"Hours watched", s.WatchedHours},
	}
	for _, r := range rows {
		p.println(fmt.Sprintf("%-16s %s", p.style(SubtitleStyle, r.label), p.style(TitleStyle, fmt.Sprint(r.value))))
	}
}

// Recommendations prints ranked titles with their reasons
func (p *Printer) Recommendations(recs []service.Recommendation) {
	if len(recs) == 0 {
		p.Empty("recommendations")
		return
	}
	for i, r := range recs {
		p.println(fmt.Sprintf("%2d. %s", i+1, p.titleLine(r.Title)))
		p.println("    " + p.style(SubtitleStyle, r.Reason))
	}
}

// DailyPick prints the day's pick followed by the rest of the list
func (p *Printer) DailyPick(pick service.DailyPick) {
	box := p.titleLine(pick.Pick.Title) + "\n" + pick.Pick.Reason
	if p.color {
		box = PickStyle.Render(box)
	}
	p.println(box)
	if len(pick.List) > 1 {
		p.println()
		p.Titles(pick.List[1:])
	}
}

// Favorites prints the user's favorites
func (p *Printer) Favorites(favs []domain.Favorite) {
	if len(favs) == 0 {
		p.Empty("favorites")
		return
	}
	for _, f := range favs {
		p.println(p.titleLine(f.Title))
	}
}

// Comments prints a title's comments. Spoilers are marked.
func (p *Printer) Comments(comments []domain.Comment) {
	if len(comments) == 0 {
		p.Empty("comments")
		return
	}
	for _, c := range comments {
		var head strings.Builder
		head.WriteString(p.style(TitleStyle, c.UserName))
		if c.Rating > 0 {
			head.WriteString(p.style(AccentStyle, fmt.Sprintf(" ★ %.1f", c.Rating)))
		}
		head.WriteString(p.style(DimStyle, " "+c.CreatedAt.Local().Format("2006-01-02")))
		if c.IsSpoiler {
			head.WriteString(p.style(ErrorStyle, " "+SpoilerChar+" spoiler"))
		}
		p.println(head.String())
		p.println("  " + c.Text)
	}
}

// Queries prints remembered search queries
func (p *Printer) Queries(queries []string) {
	if len(queries) == 0 {
		p.Empty("recent searches")
		return
	}
	for _, q := range queries {
		p.println(p.style(SubtitleStyle, q))
	}
}
