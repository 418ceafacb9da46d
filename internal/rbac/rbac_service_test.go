package rbac_test

import (
	"testing"

	"go-leave/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee reads leave", rbac.RoleEmployee, "leave", "read", true},
		{"employee creates leave", rbac.RoleEmployee, "leave", "create", true},
		{"employee cancels leave", rbac.RoleEmployee, "leave", "cancel", true},
		{"employee cannot approve", rbac.RoleEmployee, "leave", "approve", false},
		{"employee reads holidays", rbac.RoleEmployee, "holiday", "read", true},
		{"employee cannot manage holidays", rbac.RoleEmployee, "holiday", "manage", false},
		{"employee reads notifications", rbac.RoleEmployee, "notification", "read", true},
		{"manager approves leave", rbac.RoleManager, "leave", "approve", true},
		{"manager inherits employee read", rbac.RoleManager, "leave", "read", true},
		{"manager cannot manage holidays", rbac.RoleManager, "holiday", "manage", false},
		{"admin approves leave", rbac.RoleAdmin, "leave", "approve", true},
		{"admin manages holidays", rbac.RoleAdmin, "holiday", "manage", true},
		{"admin inherits employee create", rbac.RoleAdmin, "leave", "create", true},
		{"unknown role denied", "intern", "leave", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(rbac.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
