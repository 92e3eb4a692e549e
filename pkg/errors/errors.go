package errors

import "errors"

// ErrBusy means another request is changing the same resource right now.
var ErrBusy = errors.New("resource is being updated by another request, try again")
