package botapimodels

import (
	"testing"

	"recruit-tools-backend/models"

	"github.com/stretchr/testify/require"
)

func TestNotifyValidate(t *testing.T) {
	t.Run(`status notify needs a recipient`, func(t *testing.T) {
		req := StatusNotify{
			NewStatus: models.ApplicationStatusReviewing,
			ActorName: "Рекрутер",
		}
		require.NotNil(t, req.Validate())

		req.CandidateID = "42"
		require.Nil(t, req.Validate())

		req.CandidateID = ""
		req.ChannelID = "channel-1"
		require.Nil(t, req.Validate())
	})

	t.Run(`status notify rejects unknown status`, func(t *testing.T) {
		req := StatusNotify{
			NewStatus:   "approved",
			ActorName:   "Рекрутер",
			CandidateID: "42",
		}
		require.NotNil(t, req.Validate())
	})

	t.Run(`close notify accepts terminal decisions only`, func(t *testing.T) {
		req := CloseNotify{
			ApplicationID: "app-1",
			CandidateName: "Иван Петров",
			Service:       "moderation",
			Decision:      models.ApplicationStatusRejected,
		}
		require.Nil(t, req.Validate())

		req.Decision = models.ApplicationStatusTraining
		require.NotNil(t, req.Validate())
	})

	t.Run(`message notify required fields`, func(t *testing.T) {
		req := MessageNotify{
			ApplicationID: "app-1",
			CandidateID:   "42",
			SenderName:    "Рекрутер",
			Content:       "Добрый день!",
		}
		require.Nil(t, req.Validate())

		req.Content = ""
		require.NotNil(t, req.Validate())
	})
}
