package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Command succeeded
	SymbolFail     = "✗" // Check or file failed
	SymbolComplete = "●" // Check ran; also marks the active theme
	SymbolSkipped  = "⊘" // Loaded with warnings
)
