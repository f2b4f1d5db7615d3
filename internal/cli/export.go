package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/export"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor"
	"github.com/rileyhilliard/rtop/internal/ui"
)

var (
	exportFormat   string
	exportOutput   string
	exportInterval string
	exportTop      int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one metrics snapshot as JSON, CSV or YAML",
	Long: `Take two samples one interval apart and write the result, including
network and disk rates and the busiest processes.

The format defaults to the output file's extension, or JSON when writing
to stdout.

Examples:
  rtop export
  rtop export --format csv >> metrics.csv
  rtop export --output ~/snapshots/now.yaml --top 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(nil)
		if err != nil {
			return err
		}
		interval, err := ParseInterval(exportInterval)
		if err != nil {
			return err
		}

		log := logger.Default()
		src := monitor.NewCollector(
			monitor.WithLogger(log),
			monitor.WithTemperature(cfg.Display.ShowTemperature),
			monitor.WithProcesses(exportTop > 0),
			monitor.WithGPU(cfg.Display.ShowGPU),
		)
		return exportCommand(cmd.Context(), cmd.OutOrStdout(), src, log, exportOptions{
			Format:   exportFormat,
			Output:   exportOutput,
			Interval: interval,
			Top:      exportTop,
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json, csv or yaml (default: from --output, else json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "file to write instead of stdout")
	exportCmd.Flags().StringVar(&exportInterval, "interval", "1s", "time between the two samples")
	exportCmd.Flags().IntVar(&exportTop, "top", export.DefaultTop, "number of processes to include (0 for none)")
	_ = exportCmd.RegisterFlagCompletionFunc("format", fixedCompletions("json", "csv", "yaml"))
	rootCmd.AddCommand(exportCmd)
}

type exportOptions struct {
	Format   string
	Output   string
	Interval time.Duration
	Top      int
}

// resolveFormat picks the export format from the flag, then the output
// file's extension.
func (o exportOptions) resolveFormat() (export.Format, error) {
	if o.Format != "" {
		return export.ParseFormat(o.Format)
	}
	if o.Output != "" {
		return export.FormatForPath(o.Output), nil
	}
	return export.FormatJSON, nil
}

// exportCommand captures a snapshot from src and writes it to w, or to
// opts.Output when set. A partial collection is written and logged.
func exportCommand(ctx context.Context, w io.Writer, src monitor.Source, log logger.Logger, opts exportOptions) error {
	format, err := opts.resolveFormat()
	if err != nil {
		return err
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	snap, err := export.Capture(ctx, src, opts.Interval, opts.Top)
	if snap == nil {
		return err
	}
	if err != nil {
		log.Warn("export: %v", err)
	}

	if opts.Output == "" {
		return export.Write(w, *snap, format)
	}

	path := config.Expand(opts.Output)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Can't create %s", filepath.Dir(path)),
			"Check directory permissions.")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Can't write %s", path),
			"Check directory permissions.")
	}
	if err := export.Write(f, *snap, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExport,
			fmt.Sprintf("Can't write %s", path),
			"Check the disk isn't full.")
	}

	fmt.Fprintf(w, "%s Exported %s metrics to %s\n", ui.SymbolSuccess, format, path)
	return nil
}
