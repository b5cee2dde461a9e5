package chatapimodels

// Модели REST API чат-платформы (каналы, личные сообщения, участники)

type MessagePayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"` // RFC3339
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type CreateDMRequest struct {
	RecipientID string `json:"recipient_id"`
}

type Channel struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

type GuildMember struct {
	User     MemberUser `json:"user"`
	Nickname string     `json:"nick,omitempty"`
	Roles    []string   `json:"roles,omitempty"`
}

type MemberUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

func (m GuildMember) DisplayName() string {
	if m.Nickname != "" {
		return m.Nickname
	}
	return m.User.Username
}

type ErrorData struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
