package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/service"
	"github.com/kobayashi-mfg/kintone-printer/internal/config"
	"github.com/kobayashi-mfg/kintone-printer/internal/container"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
	"github.com/kobayashi-mfg/kintone-printer/pkg/utils"
)

var filterFlag = &cli.StringFlag{
	Name:    "filter",
	Aliases: []string{"q"},
	Usage:   `kintone query condition, e.g. 'customer = "ACME"'`,
}

// withServices loads the configuration, starts the container and runs fn.
func withServices(c *cli.Context, fn func(*container.ServiceBundle) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	logger, err := utils.NewCLILogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}, c.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctr, err := container.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := ctr.Start(); err != nil {
		return err
	}
	defer ctr.Close()

	return fn(ctr.Services())
}

func recordsCommand() *cli.Command {
	return &cli.Command{
		Name:  "records",
		Usage: "list invoice number, customer and date of every record",
		Flags: []cli.Flag{filterFlag},
		Action: func(c *cli.Context) error {
			return withServices(c, func(s *container.ServiceBundle) error {
				records, err := s.Records.ListRecords(c.Context, c.String("filter"))
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "INVOICE\tCUSTOMER\tDATE")
				for _, r := range records {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Number, r.Customer, r.Date)
				}
				return w.Flush()
			})
		},
	}
}

func columnsCommand() *cli.Command {
	return &cli.Command{
		Name:  "columns",
		Usage: "list the field codes available to reports",
		Flags: []cli.Flag{filterFlag},
		Action: func(c *cli.Context) error {
			return withServices(c, func(s *container.ServiceBundle) error {
				columns, err := s.Records.ListColumns(c.Context, c.String("filter"))
				if err != nil {
					return err
				}
				for _, col := range columns {
					fmt.Fprintln(c.App.Writer, col)
				}
				return nil
			})
		},
	}
}

func invoiceCommand() *cli.Command {
	return &cli.Command{
		Name:  "invoice",
		Usage: "print the invoice of one record",
		Flags: []cli.Flag{
			filterFlag,
			&cli.StringFlag{
				Name:     "number",
				Aliases:  []string{"n"},
				Usage:    "invoice number of the record to print",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			return withServices(c, func(s *container.ServiceBundle) error {
				result, err := s.Invoice.GenerateInvoice(c.Context, c.String("filter"), c.String("number"))
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "PDF saved: %s (%d line items)\n", result.FilePath, result.LineItems)
				return nil
			})
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "print a table of the selected columns with optional QR codes",
		Flags: []cli.Flag{
			filterFlag,
			&cli.StringSliceFlag{Name: "display", Aliases: []string{"d"}, Usage: "columns to print"},
			&cli.StringSliceFlag{Name: "encode", Aliases: []string{"e"}, Usage: "columns joined into the QR code"},
			&cli.StringSliceFlag{Name: "suppress-zero", Aliases: []string{"z"}, Usage: "drop rows where any of these columns is 0"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "pdf", Usage: "pdf or xlsx"},
			&cli.StringFlag{Name: "font-name", Usage: "font family"},
			&cli.StringFlag{Name: "font-path", Usage: "TrueType font file"},
			&cli.IntFlag{Name: "font-size", Usage: "font size in points"},
			&cli.StringFlag{Name: "page-size", Usage: strings.Join(preferences.PageSizes(), ", ")},
			&cli.StringFlag{Name: "orientation", Usage: "portrait or landscape"},
		},
		Action: func(c *cli.Context) error {
			return withServices(c, func(s *container.ServiceBundle) error {
				req := service.ReportRequest{
					Filter:   c.String("filter"),
					Display:  c.StringSlice("display"),
					Encode:   c.StringSlice("encode"),
					Suppress: c.StringSlice("suppress-zero"),
					Format:   c.String("format"),
				}

				if prefsChanged(c) {
					prefs, err := s.Report.GetPreferences(c.Context)
					if err != nil {
						return err
					}
					applyPreferenceFlags(c, &prefs)
					req.Preferences = &prefs
				}

				result, err := s.Report.GenerateReport(c.Context, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s saved: %s (%d rows, %d skipped)\n",
					strings.ToUpper(result.Format), result.FilePath, result.Rows, result.Skipped)
				return nil
			})
		},
	}
}

var preferenceFlags = []string{"font-name", "font-path", "font-size", "page-size", "orientation"}

func prefsChanged(c *cli.Context) bool {
	for _, name := range preferenceFlags {
		if c.IsSet(name) {
			return true
		}
	}
	return false
}

func applyPreferenceFlags(c *cli.Context, prefs *preferences.Preferences) {
	if c.IsSet("font-name") {
		prefs.FontName = c.String("font-name")
	}
	if c.IsSet("font-path") {
		prefs.FontPath = c.String("font-path")
	}
	if c.IsSet("font-size") {
		prefs.FontSize = c.Int("font-size")
	}
	if c.IsSet("page-size") {
		prefs.PageSize = strings.ToUpper(c.String("page-size"))
	}
	if c.IsSet("orientation") {
		prefs.Orientation = c.String("orientation")
	}
}

func preferencesCommand() *cli.Command {
	return &cli.Command{
		Name:  "prefs",
		Usage: "show the saved report preferences",
		Action: func(c *cli.Context) error {
			return withServices(c, func(s *container.ServiceBundle) error {
				prefs, err := s.Report.GetPreferences(c.Context)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "font_name\t%s\n", prefs.FontName)
				fmt.Fprintf(w, "font_path\t%s\n", prefs.FontPath)
				fmt.Fprintf(w, "font_size\t%d\n", prefs.FontSize)
				fmt.Fprintf(w, "page_size\t%s\n", prefs.PageSize)
				fmt.Fprintf(w, "orientation\t%s\n", prefs.Orientation)
				return w.Flush()
			})
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list generated documents, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20},
			&cli.IntFlag{Name: "offset"},
		},
		Action: func(c *cli.Context) error {
			return withServices(c, func(s *container.ServiceBundle) error {
				gens, err := s.History.ListGenerations(c.Context, c.Int("limit"), c.Int("offset"))
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CREATED\tKIND\tFORMAT\tROWS\tPATH")
				for _, g := range gens {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
						g.CreatedAt.Local().Format("2006-01-02 15:04:05"), g.Kind, g.Format, g.RowCount, g.FilePath)
				}
				return w.Flush()
			})
		},
	}
}
