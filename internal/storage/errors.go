package storage

import "fmt"

// PersistenceError indicates the key-value store could not be read or written.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
