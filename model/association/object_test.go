package association

import (
	"testing"

	"github.com/dhamidi/formkit/model"
)

func TestFactoryFromSpec(t *testing.T) {
	tests := []struct {
		spec     *model.AssociationSpec
		title    string
		required bool
		check    func(a model.Association) bool
	}{
		{
			spec:  nil,
			title: "no association",
			check: func(a model.Association) bool { return a == nil },
		},
		{
			spec:  &model.AssociationSpec{Kind: KindNone},
			title: "no association",
			check: func(a model.Association) bool { return a == nil },
		},
		{
			spec:  &model.AssociationSpec{Kind: KindEmpty},
			title: "empty",
			check: func(a model.Association) bool { _, ok := a.(*Empty); return ok },
		},
		{
			spec:     &model.AssociationSpec{Kind: KindConstructorParent, Required: true},
			title:    "constructor parent",
			required: true,
			check:    func(a model.Association) bool { _, ok := a.(*ConstructorParent); return ok },
		},
		{
			spec:  &model.AssociationSpec{Kind: KindInvocationChild, Source: "%parent%.add(%child%)", Title: "add"},
			title: "add",
			check: func(a model.Association) bool { _, ok := a.(*InvocationChild); return ok },
		},
		{
			spec:  &model.AssociationSpec{Kind: KindInvocationChild},
			title: "invocation child",
			check: func(a model.Association) bool { _, ok := a.(*InvocationChild); return ok },
		},
		{
			spec: &model.AssociationSpec{
				Kind:           KindInvocationChildEllipsis,
				Source:         "%parent%.setItems(%child%)",
				RemoveOnEmpty:  true,
				OnEmptySource:  "%parent%.clear()",
				ParameterIndex: 0,
			},
			title: "%parent%.setItems(%child%)",
			check: func(a model.Association) bool {
				e, ok := a.(*InvocationChildEllipsis)
				return ok && e.IsRemoveOnEmpty()
			},
		},
		{
			spec:  &model.AssociationSpec{Kind: KindInvocationChildArray, Source: "%parent%.setColumns(new Column[]{%child%})"},
			title: "%parent%.setColumns(new Column[]{%child%})",
			check: func(a model.Association) bool {
				arr, ok := a.(*InvocationChildArray)
				return ok && !arr.IsRemoveOnEmpty()
			},
		},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.spec != nil {
			name = tt.spec.Kind
		}
		t.Run(name, func(t *testing.T) {
			factory, err := FactoryFromSpec(tt.spec)
			if err != nil {
				t.Fatalf("Failed to build factory: %v", err)
			}
			o := factory()
			if o.Title() != tt.title {
				t.Errorf("Expected title %q, got %q", tt.title, o.Title())
			}
			if o.IsRequired() != tt.required {
				t.Errorf("Expected required %v, got %v", tt.required, o.IsRequired())
			}
			if !tt.check(o.Association()) {
				t.Errorf("Unexpected association %T", o.Association())
			}
		})
	}
}

func TestFactoryFromSpecErrors(t *testing.T) {
	specs := []*model.AssociationSpec{
		{Kind: "telepathy"},
		{Kind: KindInvocationChild, Source: "add(%child%)"},
		{Kind: KindInvocationChildArray, Source: ""},
		{Kind: KindInvocationChildEllipsis, Source: "%this%.setItems(%child%)"},
	}
	for _, spec := range specs {
		if _, err := FactoryFromSpec(spec); err == nil {
			t.Errorf("Expected an error for %+v", spec)
		}
	}
}

func TestFactoryMakesFreshAssociations(t *testing.T) {
	factory, err := FactoryFromSpec(&model.AssociationSpec{Kind: KindInvocationChild, Source: "%parent%.add(%child%)"})
	if err != nil {
		t.Fatalf("Failed to build factory: %v", err)
	}
	first, second := factory().Association(), factory().Association()
	if first == second {
		t.Error("Expected a new association per call")
	}

	for _, f := range []Factory{EmptyFactory(), InvocationVoidFactory(), InvocationChildNullFactory(), InvocationChildFactory("%parent%.add(%child%)", true)} {
		if a, b := f().Association(), f().Association(); a == b {
			t.Errorf("Expected a new association per call, got %T twice", a)
		}
	}
	if NoFactory()().Association() != nil {
		t.Error("Expected no association")
	}
}
