// Command kprint prints invoices and tabular reports from a kintone app.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		var validation *apperr.ValidationError
		if errors.As(err, &validation) {
			fmt.Fprintf(os.Stderr, "notice: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "kprint",
		Usage: "print invoices and reports from kintone records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				EnvVars: []string{"KPRINT_CONFIG"},
				Usage:   "path to the YAML configuration",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			recordsCommand(),
			columnsCommand(),
			invoiceCommand(),
			reportCommand(),
			preferencesCommand(),
			historyCommand(),
		},
	}
}
