package wsmodels

// ServerMessage - событие, рассылаемое подключенным панелям рекрутеров
type ServerMessage struct {
	Time          string `json:"time"`                     // время события
	Code          string `json:"code"`                     // код события (application_created, status_changed...)
	ApplicationID string `json:"application_id,omitempty"` // кандидатура, к которой относится событие
	Msg           string `json:"msg"`                      // текст события
}

const (
	EventApplicationCreated   = "application_created"
	EventApplicationUpdated   = "status_changed"
	EventApplicationWithdrawn = "application_withdrawn"
	EventApplicationDeleted   = "application_deleted"
)
