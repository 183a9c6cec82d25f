package person

import (
	"fmt"
	"slices"

	"github.com/taibuivan/personapi/internal/platform/validate"
)

// View is an operation kind. Each view declares which fields it reads from
// input, which of those are mandatory, and which it writes to output.
type View string

const (
	ViewCreate View = "create"
	ViewList   View = "list"
	ViewView   View = "view"
	ViewUpdate View = "update"
)

// Profile is the field capability set of a single view.
type Profile struct {
	// InputFields lists the fields read from an input payload. Other fields are ignored.
	InputFields []string
	// RequiredFields lists the fields that must be present in the payload.
	RequiredFields []string
	// EmitFields lists the fields written to output, in output order.
	EmitFields []string
}

// profiles is the view matrix.
//
//	| Field       | Create        | List     | View     | Update   |
//	| id          | emit only     | req+emit | req+emit | req+emit |
//	| name        | req+emit      | req+emit | req+emit | req+emit |
//	| description | req+emit      | -        | req+emit | req+emit |
var profiles = map[View]Profile{
	ViewCreate: {
		InputFields:    []string{FieldName, FieldDescription},
		RequiredFields: []string{FieldName, FieldDescription},
		EmitFields:     []string{FieldID, FieldName, FieldDescription},
	},
	ViewList: {
		InputFields:    []string{FieldID, FieldName},
		RequiredFields: []string{FieldID, FieldName},
		EmitFields:     []string{FieldID, FieldName},
	},
	ViewView: {
		InputFields:    []string{FieldID, FieldName, FieldDescription},
		RequiredFields: []string{FieldID, FieldName, FieldDescription},
		EmitFields:     []string{FieldID, FieldName, FieldDescription},
	},
	ViewUpdate: {
		InputFields:    []string{FieldID, FieldName, FieldDescription},
		RequiredFields: []string{FieldID, FieldName, FieldDescription},
		EmitFields:     []string{FieldID, FieldName, FieldDescription},
	},
}

// Views returns all views in a stable order.
func Views() []View {
	return []View{ViewCreate, ViewList, ViewView, ViewUpdate}
}

// ProfileOf returns the profile declared for view.
func ProfileOf(view View) (Profile, bool) {
	profile, ok := profiles[view]
	return profile, ok
}

// Accepts reports whether the view reads field from input.
func (p Profile) Accepts(field string) bool { return slices.Contains(p.InputFields, field) }

// Requires reports whether the view requires field in input.
func (p Profile) Requires(field string) bool { return slices.Contains(p.RequiredFields, field) }

// Emits reports whether the view writes field to output.
func (p Profile) Emits(field string) bool { return slices.Contains(p.EmitFields, field) }

// Validate checks payload against the view. Every required field must be
// present, and every accepted field that is present must be within bounds.
// All violations are reported together.
func Validate(view View, payload Payload) error {
	profile, ok := ProfileOf(view)
	if !ok {
		return fmt.Errorf("person: unknown view %q", view)
	}

	validator := &validate.Validator{}

	if profile.Accepts(FieldID) {
		switch {
		case payload.ID != nil:
			validator.Positive(FieldID, *payload.ID)
		case profile.Requires(FieldID):
			validator.Present(FieldID, false)
		}
	}

	if profile.Accepts(FieldName) {
		switch {
		case payload.Name != nil:
			validator.Length(FieldName, *payload.Name, NameMinLen, NameMaxLen)
		case profile.Requires(FieldName):
			validator.Present(FieldName, false)
		}
	}

	if profile.Accepts(FieldDescription) {
		switch {
		case payload.Description != nil:
			validator.Length(FieldDescription, *payload.Description, DescriptionMinLen, DescriptionMaxLen)
		case profile.Requires(FieldDescription):
			validator.Present(FieldDescription, false)
		}
	}

	return validator.Err()
}

// Output is the serialized form of a Person under a view. Fields the view
// does not emit stay nil and are omitted from JSON.
type Output struct {
	ID          *int64  `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Project copies the fields emitted by view from p.
func Project(view View, p *Person) Output {
	profile := profiles[view]
	output := Output{}

	if profile.Emits(FieldID) {
		id := p.ID
		output.ID = &id
	}
	if profile.Emits(FieldName) {
		name := p.Name
		output.Name = &name
	}
	if profile.Emits(FieldDescription) {
		description := p.Description
		output.Description = &description
	}

	return output
}

// ProjectAll projects every person in persons. It never returns nil.
func ProjectAll(view View, persons []*Person) []Output {
	outputs := make([]Output, 0, len(persons))
	for _, p := range persons {
		outputs = append(outputs, Project(view, p))
	}
	return outputs
}
