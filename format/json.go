package format

import (
	"encoding/json"
	"io"
)

type JSONEncoder struct {
	w    io.Writer
	root *Component
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(root *Component) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildComponentData(e.root), "", "  ")
}

type jsonComponent struct {
	Name        string          `json:"name"`
	Class       string          `json:"class"`
	Association string          `json:"association,omitempty"`
	Line        int             `json:"line,omitempty"`
	Children    []jsonComponent `json:"children,omitempty"`
}

func buildComponentData(c *Component) *jsonComponent {
	if c == nil {
		return nil
	}
	data := &jsonComponent{
		Name:        c.Name,
		Class:       c.Class,
		Association: c.Association,
		Line:        c.Line,
	}
	for _, child := range c.Children {
		data.Children = append(data.Children, *buildComponentData(child))
	}
	return data
}
