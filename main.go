package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "hifdh: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "hifdh",
		Usage:   "Memorize the Quran page by page with repeated recitation",
		Version: version,
		Flags:   append(configFlags(), sessionFlags()...),
		Action:  runTUI,
		Commands: []*cli.Command{
			planCommand(),
			pageCommand(),
			recitersCommand(),
			historyCommand(),
		},
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Read configuration from this file only",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
		},
	}
}

// sessionFlags override the configuration and the saved session. They only
// apply to the trainer itself; configFlags are shared with every subcommand.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "Open this mushaf page (1-604)",
			Local:   true,
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Sequence mode: hifdh, verse or fullpage",
			Local:   true,
		},
		&cli.IntFlag{
			Name:    "repetitions",
			Aliases: []string{"r"},
			Usage:   "Repetitions per group, or page passes in fullpage mode (1-30)",
			Local:   true,
		},
		&cli.IntFlag{
			Name:  "reciter",
			Usage: "quran.com recitation id",
			Local: true,
		},
	}
}
