package defaults

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // All scenarios passed
	ExitTestsFailed   = 1 // One or more scenarios failed
	ExitUserError     = 2 // Invalid arguments or configuration
	ExitNetworkError  = 3 // Network/connection failure
	ExitInternalError = 4 // Unexpected internal error
)
