package format

import (
	"encoding"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(root *Component) error
}

// Component is one node of a component tree as the encoders print it.
type Component struct {
	Name        string
	Class       string
	Association string
	Line        int
	Children    []*Component
}
