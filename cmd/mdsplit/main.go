// Command mdsplit splits a large Markdown document into one file per
// level-2 section with generated tables of contents.
package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdsplit/cmd/mdsplit/commands"
	ferrors "git.home.luguber.info/inful/mdsplit/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsplit/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("mdsplit"),
		kong.Description("Split a Markdown document into per-section files with tables of contents."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		if ferrors.IsClassified(err) {
			ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
		}
		parser.FatalIfErrorf(err)
		return
	}

	if err := kctx.Run(&commands.Global{Out: os.Stdout}); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
