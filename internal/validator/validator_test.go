package validator

import (
	"testing"

	"mwork_admission/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_BatchRequest(t *testing.T) {
	v := New()

	ok := &dto.BatchTransitionRequest{Items: []dto.BatchTransitionItem{
		{AssignmentID: "7b0c7a1e-2f4c-4a0e-9d55-0a3b1c9e1f10", Status: "active"},
		{AssignmentID: "8c1d8b2f-3a5d-4b1f-8e66-1b4c2d0f2a21", Status: "removed"},
	}}
	assert.NoError(t, v.Validate(ok))

	bad := &dto.BatchTransitionRequest{Items: []dto.BatchTransitionItem{
		{AssignmentID: "not-a-uuid", Status: "pending"},
	}}
	err := v.Validate(bad)
	require.Error(t, err)

	vErr, isValidation := err.(*ValidationError)
	require.True(t, isValidation)
	assert.Contains(t, vErr.Errors, "items[0].assignment_id")
	assert.Equal(t, "Must be one of: active, rejected, removed", vErr.Errors["items[0].status"])

	assert.Error(t, v.Validate(&dto.BatchTransitionRequest{}))
}

func TestValidate_RoleTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.ApplyRequest{}))
	assert.NoError(t, v.Validate(&dto.ApplyRequest{Role: "photographer"}))
	assert.Error(t, v.Validate(&dto.ApplyRequest{Role: "stylist"}))
}

func TestValidate_CreateCastingRoles(t *testing.T) {
	v := New()

	req := &dto.CreateCastingRequest{
		Title: "Fashion week",
		City:  "Астана",
		Roles: []dto.CastingRoleRequest{
			{Role: "model", Capacity: 5},
			{Role: "model", Capacity: 1},
		},
	}
	err := v.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.(*ValidationError).Errors, "roles")

	req.Roles[1].Role = "designer"
	assert.NoError(t, v.Validate(req))

	req.Roles[1].Capacity = 0
	assert.Error(t, v.Validate(req))
}
