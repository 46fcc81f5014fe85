package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tesso57/rssminer/internal/application/usecase"
	"github.com/tesso57/rssminer/internal/domain/discovery"
)

const titleWidth = 48

// Printer writes the human-readable run report.
type Printer struct {
	w      io.Writer
	title  lipgloss.Style
	muted  lipgloss.Style
	format lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
}

// NewPrinter returns a Printer whose colours follow the capabilities of w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		title:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("244")),
		format: r.NewStyle().Foreground(lipgloss.Color("39")).Width(6),
		ok:     r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Start announces how many pages will be searched.
func (p *Printer) Start(urls int) {
	fmt.Fprintf(p.w, "Found %d URLs to process\n", urls)
}

// Feeds lists every discovered feed and the total.
func (p *Printer) Feeds(feeds []discovery.Feed) {
	fmt.Fprintln(p.w)
	for _, f := range feeds {
		title := fitTitle(f.Title, titleWidth)
		fmt.Fprintf(p.w, "  %s %s %s\n", p.format.Render(f.Format.String()), title, p.muted.Render(f.FeedURL))
	}
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf("Total feeds found: %d", len(feeds))))
}

// Summary prints the per-page outcome counts.
func (p *Printer) Summary(r usecase.DiscoveryReport) {
	line := fmt.Sprintf("Pages: %d with feeds, %d without, %d failed, %d timed out",
		r.WithFeeds, r.Empty, r.Failed, r.TimedOut)
	fmt.Fprintln(p.w, p.muted.Render(line))
}

// NothingFound reports that no subscription file will be written.
func (p *Printer) NothingFound() {
	fmt.Fprintln(p.w, p.warn.Render("No RSS feeds found. OPML file will not be created."))
}

// Exported reports the outcome of one export target.
func (p *Printer) Exported(res usecase.ExportResult) {
	if !res.Written {
		fmt.Fprintln(p.w, p.warn.Render(fmt.Sprintf("No %s feeds found. %s will not be created.", res.Filter, res.Path)))
		return
	}
	fmt.Fprintln(p.w, p.ok.Render(fmt.Sprintf("OPML file created: %s (%d entries)", res.Path, res.Entries)))
}

// fitTitle flattens whitespace in a feed title and cuts it to width cells.
func fitTitle(title string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(strings.Join(strings.Fields(title), " "), width, "...")
}
