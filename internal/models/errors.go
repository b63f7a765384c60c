package models

// ValidationError reports a malformed input field. It is the only error the
// models package produces and is always safe to show to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
