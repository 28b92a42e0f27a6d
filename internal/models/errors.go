package models

import "errors"

// Common errors. ErrEmailRequired doubles as the client-facing message,
// preserving the wording the front end already handles.
var (
	ErrEmailRequired = errors.New("Email is required")
)
