package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// Styles holds the color formatters for console output.
type Styles struct {
	Repo    *color.Color
	File    *color.Color
	Key     *color.Color
	Heading *color.Color
	Value   *color.Color
}

// NewStyles creates color formatters. enabled=false yields plain text.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		Repo:    color.New(color.Bold, color.FgHiWhite),
		File:    color.New(color.FgHiBlue),
		Key:     color.New(color.FgYellow),
		Heading: color.New(color.Bold),
		Value:   color.New(color.FgHiGreen),
	}

	if !enabled {
		s.Repo.DisableColor()
		s.File.DisableColor()
		s.Key.DisableColor()
		s.Heading.DisableColor()
		s.Value.DisableColor()
	} else {
		s.Repo.EnableColor()
		s.File.EnableColor()
		s.Key.EnableColor()
		s.Heading.EnableColor()
		s.Value.EnableColor()
	}

	return s
}

// MatchLine formats the live line for a record:
// "<label> (<file>) - Found: K1, K2".
func MatchLine(r *types.ScanRecord) string {
	return fmt.Sprintf("%s (%s) - Found: %s", r.Label, r.File, strings.Join(r.Secrets.Keys(), ", "))
}

// ConsoleOptions configures a Console.
type ConsoleOptions struct {
	Out      io.Writer // match and summary lines
	Progress io.Writer // spinner destination; nil disables the spinner
	Color    bool
}

// Console prints matches as they are found and a summary at the end.
type Console struct {
	out    io.Writer
	styles *Styles
	bar    *progressbar.ProgressBar
}

// NewConsole creates a console reporter.
func NewConsole(opts ConsoleOptions) *Console {
	c := &Console{
		out:    opts.Out,
		styles: NewStyles(opts.Color),
	}
	if c.out == nil {
		c.out = io.Discard
	}

	if opts.Progress != nil {
		c.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Searching"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	return c
}

// OnMatch prints the record's match line.
func (c *Console) OnMatch(r *types.ScanRecord) {
	c.clearBar()

	keys := r.Secrets.Keys()
	styled := make([]string, len(keys))
	for i, k := range keys {
		styled[i] = c.styles.Key.Sprint(k)
	}

	fmt.Fprintf(c.out, "%s (%s) - Found: %s\n",
		c.styles.Repo.Sprint(r.Label),
		c.styles.File.Sprint(r.File),
		strings.Join(styled, ", "))
}

// OnPage ticks the spinner after each processed page.
func (c *Console) OnPage(s *types.Session) {
	if c.bar == nil {
		return
	}
	c.bar.Describe(fmt.Sprintf("Searching page %d, %d found", s.Page, s.Found))
	_ = c.bar.Add(1)
}

// Finish prints the end-of-scan summary.
func (c *Console) Finish(s *types.Session) {
	if c.bar != nil {
		_ = c.bar.Finish()
	}

	if s.Interrupted {
		fmt.Fprintln(c.out, "\nSearch interrupted by user")
	}
	fmt.Fprintf(c.out, "\nSearch completed. Found %d matches.\n", s.Found)
}

// Written prints the confirmation after a report file is saved.
func (c *Console) Written(path string) {
	fmt.Fprintf(c.out, "Results written to %s\n", path)
}

func (c *Console) clearBar() {
	if c.bar != nil {
		_ = c.bar.Clear()
	}
}
