package catalog

// cardNotFoundError signals a lookup miss so the HTTP layer can map it to 404.
type cardNotFoundError struct{ key string }

func (e cardNotFoundError) Error() string { return "card not found: " + e.key }

// ErrCardNotFound constructs a cardNotFoundError for the given key.
func ErrCardNotFound(key string) error { return cardNotFoundError{key: key} }

// IsCardNotFound reports whether the error indicates a missing card key.
func IsCardNotFound(err error) bool {
	_, ok := err.(cardNotFoundError)
	return ok
}
