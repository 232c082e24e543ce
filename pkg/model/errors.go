package model

import "fmt"

// MalformedPayloadError reports a raw payload that cannot be decoded without
// fabricating data: bad JSON shape, a tuple/key length mismatch, or a
// non-numeric coordinate. The whole payload is rejected; partial decoding of
// a broken payload is never attempted.
type MalformedPayloadError struct {
	Msg string
	Err error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed annotation payload: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("malformed annotation payload: %s", e.Msg)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}
