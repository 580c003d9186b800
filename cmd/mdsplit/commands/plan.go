package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdsplit/internal/splitter"
)

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	Source string `arg:"" help:"Markdown file to inspect"`
}

// Run prints the filename each section would be written to.
func (p *PlanCmd) Run(g *Global, _ *CLI) error {
	lines, err := readSource(p.Source)
	if err != nil {
		return err
	}

	sections := splitter.Plan(lines)
	out := g.out()
	if len(sections) == 0 {
		_, _ = fmt.Fprintln(out, "No sections found; the file has no level-2 headings.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Would create %d files:\n", len(sections))
	for _, s := range sections {
		_, _ = fmt.Fprintf(out, "  %s: %s\n", s.Filename, s.Title)
	}
	return nil
}
