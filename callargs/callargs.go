package callargs

import (
	"fmt"
	"maps"
	"slices"
)

// Form identifies how a logical argument was supplied.
type Form int

const (
	// Missing means neither form carries the argument.
	Missing Form = iota
	// Positional means the argument sits in the positional slice.
	Positional
	// Keyword means the argument sits in the keyword map.
	Keyword
)

func (f Form) String() string {
	switch f {
	case Positional:
		return "positional"
	case Keyword:
		return "keyword"
	default:
		return "missing"
	}
}

// Slot addresses one logical parameter of a call signature.
type Slot struct {
	Index int
	Name  string
}

func (s Slot) String() string {
	return fmt.Sprintf("%s#%d", s.Name, s.Index)
}

// Location is where a slot was found for one concrete call.
type Location struct {
	Form  Form
	Index int
	Name  string
}

// Found reports whether the slot is carried by either form.
func (l Location) Found() bool {
	return l.Form != Missing
}

// Locate resolves slot against a call. Positional takes precedence.
func Locate(args []any, kwargs map[string]any, slot Slot) Location {
	if slot.Index >= 0 && len(args) > slot.Index {
		return Location{Form: Positional, Index: slot.Index}
	}
	if _, ok := kwargs[slot.Name]; ok {
		return Location{Form: Keyword, Name: slot.Name}
	}
	return Location{Form: Missing}
}

// Get returns the value of the argument at index or, failing that, the
// keyword argument name.
func Get(args []any, kwargs map[string]any, index int, name string) (any, error) {
	return Slot{Index: index, Name: name}.Get(args, kwargs)
}

// Set returns a copy of (args, kwargs) with the argument at index/name set
// to value. A positionally supplied argument is replaced in place; anything
// else is written as a keyword.
func Set(args []any, kwargs map[string]any, index int, name string, value any) ([]any, map[string]any) {
	return Slot{Index: index, Name: name}.Set(args, kwargs, value)
}

// Get returns the value carried by the slot.
func (s Slot) Get(args []any, kwargs map[string]any) (any, error) {
	loc := Locate(args, kwargs, s)
	switch loc.Form {
	case Positional:
		return args[loc.Index], nil
	case Keyword:
		return kwargs[loc.Name], nil
	default:
		return nil, fmt.Errorf("%w: %s (%d positional, %d keyword)", ErrArgumentNotFound, s, len(args), len(kwargs))
	}
}

// Set returns a copy of (args, kwargs) carrying value in the slot.
func (s Slot) Set(args []any, kwargs map[string]any, value any) ([]any, map[string]any) {
	if s.Index >= 0 && len(args) > s.Index {
		out := slices.Clone(args)
		out[s.Index] = value
		return out, kwargs
	}

	out := make(map[string]any, len(kwargs)+1)
	maps.Copy(out, kwargs)
	out[s.Name] = value
	return args, out
}
