package format

import (
	"fmt"
	"io"
	"strings"
)

// LineEncoder prints a component tree one component per line, indented by
// depth, with tab separated name, class, association and line.
type LineEncoder struct {
	w    io.Writer
	root *Component
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(root *Component) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.root != nil {
		e.writeComponent(&sb, e.root, 0)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeComponent(sb *strings.Builder, c *Component, depth int) {
	association := c.Association
	if association == "" {
		association = "-"
	}
	fmt.Fprintf(sb, "%s%s\t%s\t%s\t%d\n", strings.Repeat("  ", depth), c.Name, c.Class, association, c.Line)
	for _, child := range c.Children {
		e.writeComponent(sb, child, depth+1)
	}
}
