package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/mdsplit/internal/config"
	"git.home.luguber.info/inful/mdsplit/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

// Run writes an example configuration to the --config path.
func (i *InitCmd) Run(g *Global, root *CLI) error {
	slog.Debug("Initializing configuration", logfields.Path(root.Config), slog.Bool("force", i.Force))
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Created: %s\n", root.Config)
	return nil
}
