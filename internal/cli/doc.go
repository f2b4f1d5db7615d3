// Package cli implements the rtop command-line interface.
//
// The package is organized around Cobra commands. Each command parses its
// flags, loads the config, and hands off to the packages that do the work:
//
//   - monitor runs the full-screen dashboard
//   - theme loads, lists and encodes themes
//   - graph, meter and box render the static preview
//   - doctor runs the diagnostic checks
//   - export writes a metrics snapshot
//
// # Command Structure
//
// The root command "rtop" starts the dashboard when run without a
// subcommand:
//
//	rtop                     - Live dashboard
//	rtop preview             - Print sample graphs and meters
//	rtop themes list         - List built-in and file themes
//	rtop themes show [name]  - Show a theme's colors and gradients
//	rtop themes export name  - Write a theme file
//	rtop themes check file   - Validate theme files
//	rtop themes use name     - Set the startup theme in config.yaml
//	rtop init                - Create config.yaml
//	rtop doctor              - Diagnose config, themes and terminal
//	rtop export              - Write a JSON, CSV or YAML metrics snapshot
//	rtop version             - Print build information
//
// # Flag Handling
//
// Global flags (--config, --no-color, --log-file) are persistent flags on
// the root command. Display flags (--theme, --graph-symbol, --corners,
// --interval, --no-gradient) are added with AddDisplayFlags to the commands
// that draw something, and override the config file through
// DisplayFlags.Apply before the config is validated. The root command also
// takes --duration to quit the dashboard after a while.
//
// # Errors
//
// Commands return *errors.Error values; Execute prints them with their
// suggestion and exits 1. Commands that already printed a report, like
// 'themes check' and 'doctor', return an ExitError to set the status quietly.
package cli
