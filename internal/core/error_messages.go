package core

// error_messages.go maps technical errors to user-friendly messages
// with support codes. Patterns are matched case-insensitively with
// strings.Contains; the first match wins, so specific patterns come
// before general ones.
//
// Code ranges:
//
//	QRY001-QRY099  quote lookup (no active dataset, no matches, bad input)
//	IMP001-IMP099  import validation and file handling
//	DB001-DB099    database connectivity and constraints
//	ERR000         fallback

import "strings"

// UserMessage provides user-friendly error information with actionable
// guidance and a code for support reference.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Quote lookup (QRY001-QRY003)
	{
		pattern: "no active pricing dataset",
		msg: UserMessage{
			Message: "No pricing data has been imported yet",
			Action:  "Import a pricing spreadsheet before requesting quotes",
			Code:    "QRY001",
		},
	},
	{
		pattern: "no quotes found",
		msg: UserMessage{
			Message: "No quotes match the requested configuration",
			Action:  "Check the available models and deductibles via the options endpoint",
			Code:    "QRY002",
		},
	},
	{
		pattern: "invalid request",
		msg: UserMessage{
			Message: "The request contains invalid parameters",
			Action:  "Check age (18-100), 5-digit zip code, model and deductible",
			Code:    "QRY003",
		},
	},

	// Import validation (IMP001-IMP005)
	{
		pattern: "missing required field",
		msg: UserMessage{
			Message: "A row is missing a required field",
			Action:  "Ensure every row has age, zip, model, deductible, premium and provider columns",
			Code:    "IMP001",
		},
	},
	{
		pattern: "invalid integer",
		msg: UserMessage{
			Message: "A numeric column contains a non-numeric value",
			Action:  "Check age, deductible and zip columns for stray text",
			Code:    "IMP002",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "A premium column contains an invalid amount",
			Action:  "Remove currency symbols and use standard decimal format",
			Code:    "IMP002",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The spreadsheet exceeds the maximum file size",
			Action:  "Split the file into smaller imports",
			Code:    "IMP003",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The file is not a valid CSV",
			Action:  "Export the sheet again as CSV or XLSX",
			Code:    "IMP004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file has no data rows",
			Action:  "Upload a spreadsheet with a header row and at least one price row",
			Code:    "IMP005",
		},
	},
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The uploaded file has no data rows",
			Action:  "Upload a spreadsheet with a header row and at least one price row",
			Code:    "IMP005",
		},
	},

	// Database (DB001-DB003)
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A conflicting record already exists",
			Action:  "Review the import for duplicate provider codes",
			Code:    "DB003",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return defaultMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}
