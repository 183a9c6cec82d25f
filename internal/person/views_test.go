package person_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/personapi/internal/person"
	"github.com/taibuivan/personapi/internal/platform/apperr"
	"github.com/taibuivan/personapi/pkg/pointer"
)

/*
TestProfiles_Matrix pins the field capabilities of every view.
*/
func TestProfiles_Matrix(t *testing.T) {
	tests := []struct {
		view     person.View
		field    string
		accepts  bool
		requires bool
		emits    bool
	}{
		{person.ViewCreate, person.FieldID, false, false, true},
		{person.ViewCreate, person.FieldName, true, true, true},
		{person.ViewCreate, person.FieldDescription, true, true, true},
		{person.ViewList, person.FieldID, true, true, true},
		{person.ViewList, person.FieldName, true, true, true},
		{person.ViewList, person.FieldDescription, false, false, false},
		{person.ViewView, person.FieldID, true, true, true},
		{person.ViewView, person.FieldName, true, true, true},
		{person.ViewView, person.FieldDescription, true, true, true},
		{person.ViewUpdate, person.FieldID, true, true, true},
		{person.ViewUpdate, person.FieldName, true, true, true},
		{person.ViewUpdate, person.FieldDescription, true, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.view)+"/"+tc.field, func(t *testing.T) {
			profile, ok := person.ProfileOf(tc.view)
			require.True(t, ok)
			assert.Equal(t, tc.accepts, profile.Accepts(tc.field), "accepts")
			assert.Equal(t, tc.requires, profile.Requires(tc.field), "requires")
			assert.Equal(t, tc.emits, profile.Emits(tc.field), "emits")
		})
	}
}

func TestProfiles_EveryViewDeclared(t *testing.T) {
	for _, view := range person.Views() {
		_, ok := person.ProfileOf(view)
		assert.True(t, ok, view)
	}

	_, ok := person.ProfileOf(person.View("delete"))
	assert.False(t, ok)
}

/*
TestValidate checks presence and bounds per view.
*/
func TestValidate(t *testing.T) {
	validName := "John Smith"
	validDescription := "Person created"

	tests := []struct {
		name      string
		view      person.View
		payload   person.Payload
		wantRules map[string]string
	}{
		{
			name:    "create valid",
			view:    person.ViewCreate,
			payload: person.Payload{Name: &validName, Description: &validDescription},
		},
		{
			name:    "create ignores id",
			view:    person.ViewCreate,
			payload: person.Payload{ID: pointer.To(int64(-5)), Name: &validName, Description: &validDescription},
		},
		{
			name:    "create missing everything",
			view:    person.ViewCreate,
			payload: person.Payload{},
			wantRules: map[string]string{
				person.FieldName:        apperr.RuleRequired,
				person.FieldDescription: apperr.RuleRequired,
			},
		},
		{
			name:    "create name too short",
			view:    person.ViewCreate,
			payload: person.Payload{Name: pointer.To("Jo"), Description: &validDescription},
			wantRules: map[string]string{
				person.FieldName: apperr.RuleMinLength,
			},
		},
		{
			name:    "create empty description is present but too short",
			view:    person.ViewCreate,
			payload: person.Payload{Name: &validName, Description: pointer.To("")},
			wantRules: map[string]string{
				person.FieldDescription: apperr.RuleMinLength,
			},
		},
		{
			name:    "create description too long",
			view:    person.ViewCreate,
			payload: person.Payload{Name: &validName, Description: pointer.To(strings.Repeat("d", 257))},
			wantRules: map[string]string{
				person.FieldDescription: apperr.RuleMaxLength,
			},
		},
		{
			name:    "list ignores description",
			view:    person.ViewList,
			payload: person.Payload{ID: pointer.To(int64(1)), Name: &validName, Description: pointer.To("x")},
		},
		{
			name:    "list requires id",
			view:    person.ViewList,
			payload: person.Payload{Name: &validName},
			wantRules: map[string]string{
				person.FieldID: apperr.RuleRequired,
			},
		},
		{
			name:    "update boundary lengths",
			view:    person.ViewUpdate,
			payload: person.Payload{ID: pointer.To(int64(7)), Name: pointer.To(strings.Repeat("n", 128)), Description: pointer.To("abc")},
		},
		{
			name:    "update non-positive id",
			view:    person.ViewUpdate,
			payload: person.Payload{ID: pointer.To(int64(0)), Name: &validName, Description: &validDescription},
			wantRules: map[string]string{
				person.FieldID: apperr.RuleFormat,
			},
		},
		{
			name:    "view name too long counted in characters",
			view:    person.ViewView,
			payload: person.Payload{ID: pointer.To(int64(1)), Name: pointer.To(strings.Repeat("é", 129)), Description: &validDescription},
			wantRules: map[string]string{
				person.FieldName: apperr.RuleMaxLength,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := person.Validate(tc.view, tc.payload)
			if len(tc.wantRules) == 0 {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)

			got := make(map[string]string, len(ae.Details))
			for _, detail := range ae.Details {
				got[detail.Field] = detail.Rule
			}
			assert.Equal(t, tc.wantRules, got)
		})
	}
}

func TestValidate_UnknownView(t *testing.T) {
	err := person.Validate(person.View("archive"), person.Payload{})
	require.Error(t, err)
	assert.False(t, apperr.IsAppError(err))
}

/*
TestProject_OmitsFieldsOutsideView makes sure the list view never leaks the
description.
*/
func TestProject_OmitsFieldsOutsideView(t *testing.T) {
	p := &person.Person{ID: 3, Name: "John Smith", Description: "Person created"}

	listed, err := json.Marshal(person.Project(person.ViewList, p))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"John Smith"}`, string(listed))

	viewed, err := json.Marshal(person.Project(person.ViewView, p))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"John Smith","description":"Person created"}`, string(viewed))
}

func TestProjectAll_EmptyIsNotNil(t *testing.T) {
	outputs := person.ProjectAll(person.ViewList, nil)
	require.NotNil(t, outputs)

	encoded, err := json.Marshal(outputs)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))
}
