package chat

import (
	"context"
	"testing"

	chatclient "recruit-tools-backend/lib/chat/client"
	"recruit-tools-backend/models"
	botapimodels "recruit-tools-backend/models/api/botapi"
	chatapimodels "recruit-tools-backend/models/api/chat"

	"github.com/stretchr/testify/require"
)

type fakeChatClient struct {
	channelMessages map[string][]chatapimodels.MessagePayload
	dms             map[string][]chatapimodels.MessagePayload
}

func newFakeChatClient() *fakeChatClient {
	return &fakeChatClient{
		channelMessages: map[string][]chatapimodels.MessagePayload{},
		dms:             map[string][]chatapimodels.MessagePayload{},
	}
}

func (f *fakeChatClient) SendChannelMessage(ctx context.Context, channelID string, payload chatapimodels.MessagePayload) (string, error) {
	f.channelMessages[channelID] = append(f.channelMessages[channelID], payload)
	return "msg-1", nil
}

func (f *fakeChatClient) SendDM(ctx context.Context, userID string, payload chatapimodels.MessagePayload) error {
	f.dms[userID] = append(f.dms[userID], payload)
	return nil
}

func (f *fakeChatClient) GetGuildMember(ctx context.Context, guildID, userID string) (*chatapimodels.GuildMember, error) {
	return &chatapimodels.GuildMember{Nickname: "ivan"}, nil
}

func newTestGateway(t *testing.T, hours int) (impl, *fakeChatClient) {
	client := newFakeChatClient()
	prev := chatclient.Instance
	chatclient.Instance = client
	t.Cleanup(func() { chatclient.Instance = prev })
	return impl{
		guildID:       "guild-1",
		orgName:       "нашу команду",
		cooldownHours: func() (int, error) { return hours, nil },
	}, client
}

func TestSendStatusNotice(t *testing.T) {
	t.Run(`notice goes to channel and DM`, func(t *testing.T) {
		gateway, client := newTestGateway(t, 0)
		err := gateway.SendStatusNotice(context.TODO(), botapimodels.StatusNotify{
			ChannelID:     "channel-1",
			CandidateID:   "42",
			CandidateName: "Иван Петров",
			Service:       "moderation",
			NewStatus:     models.ApplicationStatusReviewing,
			ActorName:     "Рекрутер",
		})
		require.Nil(t, err)
		require.Equal(t, 1, len(client.channelMessages["channel-1"]))
		require.Equal(t, 1, len(client.dms["42"]))
	})

	t.Run(`without channel only a DM is sent`, func(t *testing.T) {
		gateway, client := newTestGateway(t, 0)
		err := gateway.SendStatusNotice(context.TODO(), botapimodels.StatusNotify{
			CandidateID:   "42",
			CandidateName: "Иван Петров",
			Service:       "moderation",
			NewStatus:     models.ApplicationStatusTraining,
			ActorName:     "Рекрутер",
		})
		require.Nil(t, err)
		require.Equal(t, 0, len(client.channelMessages))
		require.Equal(t, 1, len(client.dms["42"]))
	})

	t.Run(`interview date is attached as a field`, func(t *testing.T) {
		gateway, client := newTestGateway(t, 0)
		err := gateway.SendStatusNotice(context.TODO(), botapimodels.StatusNotify{
			CandidateID:   "42",
			CandidateName: "Иван Петров",
			Service:       "moderation",
			NewStatus:     models.ApplicationStatusInterviewScheduled,
			ActorName:     "Рекрутер",
			InterviewDate: "15/04/2025 18:30",
		})
		require.Nil(t, err)
		embed := client.dms["42"][0].Embeds[0]
		last := embed.Fields[len(embed.Fields)-1]
		require.Equal(t, "Дата собеседования", last.Name)
		require.Equal(t, "15/04/2025 18:30", last.Value)
	})
}

func TestSendCloseNotice(t *testing.T) {
	t.Run(`rejection mentions the cooldown`, func(t *testing.T) {
		gateway, client := newTestGateway(t, 72)
		err := gateway.SendCloseNotice(context.TODO(), botapimodels.CloseNotify{
			ApplicationID: "app-1",
			CandidateID:   "42",
			CandidateName: "Иван Петров",
			Service:       "moderation",
			Decision:      models.ApplicationStatusRejected,
			Reason:        "не прошел проверку",
		})
		require.Nil(t, err)
		embed := client.dms["42"][0].Embeds[0]
		require.Equal(t, "Кандидатура отклонена", embed.Title)
		require.Contains(t, embed.Description, "через 72 ч.")
		require.Equal(t, "Причина", embed.Fields[len(embed.Fields)-1].Name)
	})

	t.Run(`approval names the organization`, func(t *testing.T) {
		gateway, client := newTestGateway(t, 72)
		err := gateway.SendCloseNotice(context.TODO(), botapimodels.CloseNotify{
			ApplicationID: "app-1",
			CandidateID:   "42",
			CandidateName: "Иван Петров",
			Service:       "moderation",
			Decision:      models.ApplicationStatusRecruited,
		})
		require.Nil(t, err)
		embed := client.dms["42"][0].Embeds[0]
		require.Equal(t, "Кандидатура одобрена", embed.Title)
		require.Contains(t, embed.Description, "нашу команду")
	})
}

func TestRelayMessage(t *testing.T) {
	t.Run(`message number goes into the title`, func(t *testing.T) {
		gateway, client := newTestGateway(t, 0)
		err := gateway.RelayMessage(context.TODO(), botapimodels.MessageNotify{
			ApplicationID: "app-1",
			CandidateID:   "42",
			SenderName:    "Рекрутер",
			Content:       "Добрый день!",
			MessageNumber: 3,
		})
		require.Nil(t, err)
		embed := client.dms["42"][0].Embeds[0]
		require.Equal(t, "Сообщение №3 от рекрутеров", embed.Title)
		require.Equal(t, "Добрый день!", embed.Description)
	})
}
