package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/doctor"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/monitor"
	"github.com/rileyhilliard/rtop/internal/ui"
)

var (
	doctorJSON bool
	doctorFix  bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose config, themes and terminal",
	Long: `Check that rtop can start: the config file loads, the configured theme
exists, theme files parse, the terminal supports color, and system metrics
can be read.

Exits with status 1 if any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout(), collectChecks(cfgFile))
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs checks, applies fixes when asked, and reports.
func doctorCommand(w io.Writer, checks []doctor.Check) error {
	results := doctor.RunAllParallel(checks)
	if doctorFix {
		results = doctor.FixAll(checks, results)
	}

	var err error
	if doctorJSON {
		err = outputDoctorJSON(w, checks, results)
	} else {
		outputDoctorText(w, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.NewExitError(1)
	}
	return nil
}

// collectChecks gathers every diagnostic check. Theme directories come from
// the config when it loads, and from the defaults otherwise.
func collectChecks(explicit string) []doctor.Check {
	cfg, _, err := config.LoadOrDefault(explicit)
	if err != nil {
		cfg = config.DefaultConfig() // config checks report the load error
	}

	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(explicit)...)
	checks = append(checks, doctor.NewThemeChecks(cfg.ThemeDirs)...)
	checks = append(checks, doctor.NewTerminalChecks()...)
	checks = append(checks, doctor.NewMetricsChecks(
		monitor.NewCollector(
			monitor.WithTemperature(cfg.Display.ShowTemperature),
			monitor.WithProcesses(cfg.Display.ShowProcesses),
			monitor.WithGPU(cfg.Display.ShowGPU),
		),
	)...)
	return checks
}

// groupResults orders results by doctor.CategoryOrder, dropping empty
// categories.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	grouped := doctor.GroupByCategory(checks)
	out := make([]CategoryOutput, 0, len(grouped))
	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		out = append(out, co)
	}
	return out
}

func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Categories: groupResults(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			Fixable:  doctor.FixableCount(results),
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("rtop Diagnostic Report"))
	fmt.Fprintln(w)

	for _, cat := range groupResults(checks, results) {
		fmt.Fprintln(w, headerStyle.Render(cat.Name))
		for _, result := range cat.Results {
			renderCheckResult(w, result)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))

		if fixable := doctor.FixableCount(results); fixable > 0 && !doctorFix {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n",
				mutedStyle.Render("--fix"))
		}
	}
	fmt.Fprintln(w)
}

// renderCheckResult renders a single check result with its suggestion
// indented below it.
func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	var symbol string
	var color lipgloss.Color

	switch result.Status {
	case doctor.StatusPass:
		symbol, color = ui.SymbolComplete, ui.ColorSuccess
	case doctor.StatusWarn:
		symbol, color = ui.SymbolComplete, ui.ColorWarning
	default:
		symbol, color = ui.SymbolFail, ui.ColorError
	}

	fmt.Fprintf(w, "  %s %s\n", lipgloss.NewStyle().Foreground(color).Render(symbol), result.Message)

	if result.Suggestion == "" || result.Status == doctor.StatusPass {
		return
	}
	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	for _, line := range strings.Split(result.Suggestion, "\n") {
		fmt.Fprintf(w, "    %s\n", muted.Render(line))
	}
}
