package erp

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound covers 404s from the ERP; in practice this means the console
// is pointed at a misconfigured endpoint, so callers surface it as a
// configuration fault rather than a server fault.
var ErrNotFound = errors.New("erp: resource not found")

// ErrServerFault covers 5xx responses from the ERP
var ErrServerFault = errors.New("erp: server fault")

// ValidationError is a 400/422 rejection. Fields carries the ERP's
// structured field errors when it supplied any.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if msg := e.FirstFieldError(); msg != "" {
		return msg
	}
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// FirstFieldError returns the first structured field error (fields in
// name order, so the choice is stable), or "" when the ERP returned none.
func (e *ValidationError) FirstFieldError() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", keys[0], e.Fields[keys[0]])
}

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
