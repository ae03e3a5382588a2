package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is the accepted input format for event times (YYYY-MM-DD HH:MM)
	DateTimeFormat = "2006-01-02 15:04"
)
