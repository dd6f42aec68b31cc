package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/formkit/java"
)

type xmlComponent struct {
	Class             string          `xml:"class,attr"`
	Title             string          `xml:"title,attr"`
	NonVisual         string          `xml:"non-visual,attr"`
	Association       *xmlAssociation `xml:"association"`
	TemplateArguments []xmlNameValue  `xml:"template-argument"`
	Constructors      []xmlMethod     `xml:"constructors>constructor"`
	Methods           []xmlMethod     `xml:"methods>method"`
}

type xmlAssociation struct {
	Kind           string `xml:"kind,attr"`
	Source         string `xml:"source,attr"`
	Required       string `xml:"required,attr"`
	Title          string `xml:"title,attr"`
	ParameterIndex string `xml:"parameter-index,attr"`
	RemoveOnEmpty  string `xml:"remove-on-empty,attr"`
	OnEmpty        string `xml:"on-empty,attr"`
}

type xmlMethod struct {
	Name       string         `xml:"name,attr"`
	Parameters []xmlParameter `xml:"parameter"`
	Tags       []xmlNameValue `xml:"tag"`
}

type xmlParameter struct {
	Type   string `xml:"type,attr"`
	Name   string `xml:"name,attr"`
	Parent string `xml:"parent,attr"`
	Child  string `xml:"child,attr"`
}

type xmlNameValue struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ReadDescriptions reads every <component> element of r, at any depth.
// A component that cannot be converted is skipped and reported in warnings;
// only a malformed document is an error.
func ReadDescriptions(r io.Reader) ([]*ComponentDescription, []error, error) {
	var (
		descs    []*ComponentDescription
		warnings []error
	)
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return descs, warnings, fmt.Errorf("read descriptions: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "component" {
			continue
		}
		line, _ := dec.InputPos()
		var xc xmlComponent
		if err := dec.DecodeElement(&xc, &start); err != nil {
			return descs, warnings, fmt.Errorf("read descriptions: line %d: %w", line, err)
		}
		desc, err := xc.convert()
		if err != nil {
			log.Warningf("skipping component at line %d: %s", line, err)
			warnings = append(warnings, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		descs = append(descs, desc)
	}
	return descs, warnings, nil
}

func (xc *xmlComponent) convert() (*ComponentDescription, error) {
	if strings.TrimSpace(xc.Class) == "" {
		return nil, errors.New("component without class")
	}
	nonVisual, err := parseBool(xc.NonVisual)
	if err != nil {
		return nil, fmt.Errorf("%s: non-visual: %w", xc.Class, err)
	}
	desc := &ComponentDescription{
		Class:             xc.Class,
		Title:             xc.Title,
		NonVisual:         nonVisual,
		TemplateArguments: make(map[string]string),
	}
	for _, arg := range xc.TemplateArguments {
		if arg.Name == "" {
			return nil, fmt.Errorf("%s: template argument without name", xc.Class)
		}
		desc.TemplateArguments[arg.Name] = arg.Value
	}
	if xc.Association != nil {
		spec, err := xc.Association.convert()
		if err != nil {
			return nil, fmt.Errorf("%s: association: %w", xc.Class, err)
		}
		desc.ChildAssociation = spec
	}
	for _, xm := range xc.Constructors {
		xm.Name = java.ConstructorName
		m, err := xm.convert()
		if err != nil {
			return nil, fmt.Errorf("%s: constructor: %w", xc.Class, err)
		}
		desc.Constructors = append(desc.Constructors, m)
	}
	for _, xm := range xc.Methods {
		if xm.Name == "" {
			return nil, fmt.Errorf("%s: method without name", xc.Class)
		}
		m, err := xm.convert()
		if err != nil {
			return nil, fmt.Errorf("%s: method %s: %w", xc.Class, xm.Name, err)
		}
		desc.Methods = append(desc.Methods, m)
	}
	return desc, nil
}

func (xa *xmlAssociation) convert() (*AssociationSpec, error) {
	if xa.Kind == "" {
		return nil, errors.New("missing kind")
	}
	spec := &AssociationSpec{
		Kind:          xa.Kind,
		Source:        xa.Source,
		Title:         xa.Title,
		OnEmptySource: xa.OnEmpty,
	}
	var err error
	if spec.Required, err = parseBool(xa.Required); err != nil {
		return nil, fmt.Errorf("required: %w", err)
	}
	if spec.RemoveOnEmpty, err = parseBool(xa.RemoveOnEmpty); err != nil {
		return nil, fmt.Errorf("remove-on-empty: %w", err)
	}
	if xa.ParameterIndex != "" {
		if spec.ParameterIndex, err = strconv.Atoi(xa.ParameterIndex); err != nil || spec.ParameterIndex < 0 {
			return nil, fmt.Errorf("parameter-index %q is not a valid index", xa.ParameterIndex)
		}
	}
	return spec, nil
}

func (xm *xmlMethod) convert() (*MethodDescription, error) {
	m := &MethodDescription{Name: xm.Name, Tags: make(map[string]string)}
	for i, xp := range xm.Parameters {
		if strings.TrimSpace(xp.Type) == "" {
			return nil, fmt.Errorf("parameter %d without type", i)
		}
		parent, err := parseBool(xp.Parent)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: parent: %w", i, err)
		}
		child, err := parseBool(xp.Child)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: child: %w", i, err)
		}
		m.Parameters = append(m.Parameters, ParameterDescription{
			Type:   xp.Type,
			Name:   xp.Name,
			Parent: parent,
			Child:  child,
		})
	}
	for _, tag := range xm.Tags {
		if tag.Name == "" {
			return nil, errors.New("tag without name")
		}
		m.Tags[tag.Name] = tag.Value
	}
	return m, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
