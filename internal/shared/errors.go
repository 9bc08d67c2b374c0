package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Generation outcomes. Cancellation and timeout are deliberately
	// distinct from server and network failures so retry logic can tell
	// an abandoned attempt apart from a failed one.
	ErrCancelled        = fmt.Errorf("operation cancelled")
	ErrTimeout          = fmt.Errorf("operation timed out")
	ErrGenerationFailed = fmt.Errorf("video generation failed")

	// Connectivity and service errors
	ErrNoConnection       = fmt.Errorf("no internet connection")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrBusy               = fmt.Errorf("operation already in progress")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidImage    = fmt.Errorf("invalid image file")
	ErrImageTooLarge   = fmt.Errorf("image file too large")
	ErrNoImage         = fmt.Errorf("no image uploaded")
	ErrNoCredits       = fmt.Errorf("no credits available")
	ErrFilterNotFound  = fmt.Errorf("filter not found")
)
