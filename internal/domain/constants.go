package domain

// NotAssigned default value for every descriptive booking field
const NotAssigned = "Not Assigned"

// Import constants
const (
	ManualEntryFileName = "Manual Entry"
	UnknownFileName     = "Unknown"
	ExportSheetTitle    = "CUMRA 2025"
	MaxImportErrors     = 10

	ImportDepositReference = "Initial deposit from Excel import"
	ImportDepositNotes     = "Auto-created from Excel import"
)

// Business validation constants
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
	MaxNotesLength   = 2000
	MaxMoneyValue    = 10_000_000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
