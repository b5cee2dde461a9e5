package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicationStatus(t *testing.T) {
	t.Run(`IsValid check`, func(t *testing.T) {
		require.Equal(t, true, ApplicationStatusPending.IsValid())
		require.Equal(t, true, ApplicationStatusRejected.IsValid())
		require.Equal(t, false, ApplicationStatus("approved").IsValid())
		require.Equal(t, false, ApplicationStatus("").IsValid())
	})

	t.Run(`IsTerminal check`, func(t *testing.T) {
		require.Equal(t, true, ApplicationStatusRecruited.IsTerminal())
		require.Equal(t, true, ApplicationStatusRejected.IsTerminal())
		require.Equal(t, false, ApplicationStatusPending.IsTerminal())
		require.Equal(t, false, ApplicationStatusInterviewFailed.IsTerminal())
		require.Equal(t, false, ApplicationStatusTraining.IsTerminal())
	})

	t.Run(`IsCloseDecision check`, func(t *testing.T) {
		require.Equal(t, true, IsCloseDecision(ApplicationStatusRecruited))
		require.Equal(t, true, IsCloseDecision(ApplicationStatusRejected))
		require.Equal(t, false, IsCloseDecision(ApplicationStatusReviewing))
	})

	t.Run(`Label fallback`, func(t *testing.T) {
		require.Equal(t, "🎉 Принят", ApplicationStatusRecruited.Label())
		require.Equal(t, "unknown", ApplicationStatus("unknown").Label())
	})
}
