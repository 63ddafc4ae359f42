package common

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrUnavailable is returned when a store was built without a database handle.
var ErrUnavailable = errors.New("data store unavailable")

func NewULID() (string, error) {
	return NewULIDAt(time.Now())
}

// NewULIDAt returns a ULID whose timestamp part is t.
func NewULIDAt(t time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(t), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
