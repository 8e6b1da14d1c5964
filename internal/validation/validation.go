package validation

// Error is a user-facing input validation failure. Handlers match on this
// type to return 422 with the message instead of a generic 500.
type Error string

func (e Error) Error() string {
	return string(e)
}
