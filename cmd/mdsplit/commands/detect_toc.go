package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdsplit/internal/tocdetect"
)

// DetectTOCCmd implements the 'detect-toc' command.
type DetectTOCCmd struct {
	Source string `arg:"" help:"Markdown file to inspect"`
}

// Run reports the source table of contents and which heuristic found it.
func (d *DetectTOCCmd) Run(g *Global, _ *CLI) error {
	lines, err := readSource(d.Source)
	if err != nil {
		return err
	}

	out := g.out()
	res, ok := tocdetect.Detect(lines)
	if !ok {
		_, _ = fmt.Fprintln(out, "No table of contents detected.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Table of contents detected (%s) at line %d, %d entries:\n",
		res.Strategy, res.StartLine, len(res.Entries))
	for _, e := range res.Entries {
		_, _ = fmt.Fprintf(out, "  %s\n", e)
	}
	return nil
}
