package palette

import (
	"errors"
	"fmt"

	"github.com/jamesrr39/goutil/errorsx"
)

// ErrInvalidSpec is the cause of every error returned while building a palette.
// Test for it with errorsx.Cause(err) == ErrInvalidSpec
var ErrInvalidSpec = errors.New("InvalidSpec")

func invalidSpecf(message string, args ...interface{}) errorsx.Error {
	return errorsx.Wrap(ErrInvalidSpec, "reason", fmt.Sprintf(message, args...))
}
