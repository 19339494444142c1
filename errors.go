package readgate

import (
	"fmt"
)

// QueueOverloadError is returned by WaitAdmission when the admission
// queue is already at its configured maximum length. Callers typically
// retry later or fail the read upstream.
type QueueOverloadError struct {
	// Name identifies the semaphore that rejected the request.
	Name string
}

func (e *QueueOverloadError) Error() string {
	return fmt.Sprintf("%s: admission queue overload", e.Name)
}

// AdmissionTimeoutError is returned by WaitAdmission when a queued
// request's context expired before resources became available.
//
// The context's error can be accessed via errors.Unwrap, so
// errors.Is(err, context.DeadlineExceeded) works as expected.
type AdmissionTimeoutError struct {
	// Name identifies the semaphore the request was queued on.
	Name  string
	cause error
}

func (e *AdmissionTimeoutError) Error() string {
	return fmt.Sprintf("%s: admission wait aborted: %v", e.Name, e.cause)
}

func (e *AdmissionTimeoutError) Unwrap() error { return e.cause }
