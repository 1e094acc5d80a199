package patch

import "errors"

var (
	// ErrModuleNotFound indicates a call-site names a module absent from the namespace.
	ErrModuleNotFound = errors.New("patch: module not found")

	// ErrFunctionNotFound indicates a call-site names a function absent from its module.
	ErrFunctionNotFound = errors.New("patch: function not found")

	// ErrInvalidCallSite indicates a call-site without module, function or wrapper.
	ErrInvalidCallSite = errors.New("patch: invalid call-site")
)
