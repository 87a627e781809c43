package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")

	// API and pipeline errors
	ErrChannelNotFound = fmt.Errorf("channel not found")
	ErrUpstream        = fmt.Errorf("upstream request failed")
	ErrExport          = fmt.Errorf("export failed")
)
