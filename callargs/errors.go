package callargs

import "errors"

// ErrArgumentNotFound indicates a slot is present neither positionally nor by keyword.
var ErrArgumentNotFound = errors.New("callargs: argument not found")
