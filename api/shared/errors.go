/* errors.go
 * Contains the error values returned by the data layer. Callers should compare with errors.Is / errors.As
 * rather than matching on message text
 * Authors: Zachary Bower
 */

package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a user, trainer or the requested history does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when creating a user that already has a record
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument is returned when a required id or field is missing
	ErrInvalidArgument = errors.New("invalid argument")
)

// StorageError is returned when the database rejects a read or write
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RemoteError is returned when the provisioning service could not be reached or reported failure.
// Status is 0 when no HTTP response was received.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote error during %s (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("remote error during %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError. Returns nil if err is nil
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
