// Package callargs reads and rewrites arguments of calls made in a
// positional-or-keyword convention.
//
// A logical argument is addressed by a Slot: its position in the signature
// and its keyword name. At any call site exactly one of the two forms carries
// the value, and callers may supply any number of leading arguments
// positionally. Get checks both forms with positional precedence; Set
// rewrites the value in whichever form already carries it and never turns a
// keyword argument into a positional one.
//
// Neither Get nor Set mutates the slice or map it was given.
package callargs
