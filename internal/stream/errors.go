package stream

import (
	"errors"
	"fmt"
)

// ErrClosed is recorded as the stream fault when work is launched after Close.
var ErrClosed = errors.New("stream: closed")

// Fault is the sticky error a stream enters when a kernel fails.
// Once faulted, the stream skips every later kernel until it is discarded.
type Fault struct {
	Kernel string
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("stream: kernel %q failed: %v", f.Kernel, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
