package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin.com/internal/model"
)

func TestEnforcerGateMatrix(t *testing.T) {
	enforcer, err := NewEnforcer(nil)
	require.NoError(t, err)

	cases := []struct {
		role model.Role
		gate string
		want bool
	}{
		{model.RoleAdmin, GateAdmin, true},
		{model.RoleAdmin, GateStaff, true},
		{model.RoleAdmin, GateAny, true},
		{model.RoleTeacher, GateAdmin, false},
		{model.RoleTeacher, GateStaff, true},
		{model.RoleTeacher, GateAny, true},
		{model.RoleStudent, GateAdmin, false},
		{model.RoleStudent, GateStaff, false},
		{model.RoleStudent, GateAny, true},
	}

	for _, tc := range cases {
		permit, err := enforcer.Enforce(string(tc.role), tc.gate, GateAction)
		require.NoError(t, err)
		assert.Equal(t, tc.want, permit, "%s -> %s", tc.role, tc.gate)
	}
}

func TestEnforcerUnknownRole(t *testing.T) {
	enforcer, err := NewEnforcer(nil)
	require.NoError(t, err)

	// 未知角色不匹配任何策略，所有门都拒绝
	for _, gate := range []string{GateAdmin, GateStaff, GateAny} {
		permit, err := enforcer.Enforce("SUPERUSER", gate, GateAction)
		require.NoError(t, err)
		assert.False(t, permit, "gate %s", gate)
	}
}
