package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRole(t *testing.T) {
	t.Run(`candidate role cannot manage applications`, func(t *testing.T) {
		require.Equal(t, false, UserRoleCandidate.CanManageApplications())
	})

	t.Run(`recruiter and admin manage applications`, func(t *testing.T) {
		require.Equal(t, true, UserRoleRecruiter.CanManageApplications())
		require.Equal(t, true, UserRoleAdmin.CanManageApplications())
	})

	t.Run(`unknown role is invalid`, func(t *testing.T) {
		require.Equal(t, false, UserRole("SUPERUSER_ROLE").IsValid())
		require.Equal(t, true, UserRoleCandidate.IsValid())
	})

	t.Run(`human name falls back to raw value`, func(t *testing.T) {
		require.Equal(t, "Кандидат", UserRoleCandidate.ToHuman())
		require.Equal(t, "X_ROLE", UserRole("X_ROLE").ToHuman())
	})
}
