package util

import "fmt"

var (
	binaryUnits  = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	decimalUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
)

// FormatBytes formats a byte count with two decimals, in binary units
// (1024, KiB) or decimal units (1000, KB). Counts below one unit are
// printed as whole bytes.
func FormatBytes(bytes uint64, decimal bool) string {
	return formatScaled(float64(bytes), decimal)
}

// FormatRate formats a bytes-per-second rate, e.g. "1.50 MiB/s".
// Negative and NaN rates show as zero.
func FormatRate(bytesPerSecond float64, decimal bool) string {
	if !(bytesPerSecond > 0) {
		bytesPerSecond = 0
	}
	return formatScaled(bytesPerSecond, decimal) + "/s"
}

func formatScaled(v float64, decimal bool) string {
	base, units := 1024.0, binaryUnits
	if decimal {
		base, units = 1000.0, decimalUnits
	}

	if v < base {
		return fmt.Sprintf("%.0f B", v)
	}

	exp := 0
	for v >= base && exp < len(units)-1 {
		v /= base
		exp++
	}
	return fmt.Sprintf("%.2f %s", v, units[exp])
}
