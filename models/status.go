package models

// ApplicationStatus - статус кандидатуры в процессе отбора
type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "pending"             // Подана, ожидает рассмотрения
	ApplicationStatusReviewing          ApplicationStatus = "reviewing"           // На рассмотрении
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled" // Назначено собеседование
	ApplicationStatusInterviewPassed    ApplicationStatus = "interview_passed"    // Собеседование пройдено
	ApplicationStatusInterviewFailed    ApplicationStatus = "interview_failed"    // Собеседование провалено
	ApplicationStatusTraining           ApplicationStatus = "training"            // Стажировка
	ApplicationStatusRecruited          ApplicationStatus = "recruited"           // Принят
	ApplicationStatusRejected           ApplicationStatus = "rejected"            // Отклонен
)

// InterviewDateLayout - формат даты собеседования в запросах операторов (ДД/ММ/ГГГГ ЧЧ:ММ)
const InterviewDateLayout = "02/01/2006 15:04"

var applicationStatuses = map[ApplicationStatus]struct{}{
	ApplicationStatusPending:            {},
	ApplicationStatusReviewing:          {},
	ApplicationStatusInterviewScheduled: {},
	ApplicationStatusInterviewPassed:    {},
	ApplicationStatusInterviewFailed:    {},
	ApplicationStatusTraining:           {},
	ApplicationStatusRecruited:          {},
	ApplicationStatusRejected:           {},
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationStatuses[s]
	return ok
}

// IsTerminal - статус закрывает кандидатуру
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusRecruited || s == ApplicationStatusRejected
}

var statusLabels = map[ApplicationStatus]string{
	ApplicationStatusPending:            "⏳ Ожидает рассмотрения",
	ApplicationStatusReviewing:          "🔍 На рассмотрении",
	ApplicationStatusInterviewScheduled: "📅 Назначено собеседование",
	ApplicationStatusInterviewPassed:    "✅ Собеседование пройдено",
	ApplicationStatusInterviewFailed:    "❌ Собеседование провалено",
	ApplicationStatusTraining:           "📚 Стажировка",
	ApplicationStatusRecruited:          "🎉 Принят",
	ApplicationStatusRejected:           "🚫 Отклонен",
}

func (s ApplicationStatus) Label() string {
	label, ok := statusLabels[s]
	if !ok {
		return string(s)
	}
	return label
}

var statusColors = map[ApplicationStatus]int{
	ApplicationStatusPending:            0xFCD34D,
	ApplicationStatusReviewing:          0x3B82F6,
	ApplicationStatusInterviewScheduled: 0xA855F7,
	ApplicationStatusInterviewPassed:    0x22C55E,
	ApplicationStatusInterviewFailed:    0xEF4444,
	ApplicationStatusTraining:           0x06B6D4,
	ApplicationStatusRecruited:          0x10B981,
	ApplicationStatusRejected:           0xEF4444,
}

// Color - цвет embed-сообщения для статуса
func (s ApplicationStatus) Color() int {
	color, ok := statusColors[s]
	if !ok {
		return 0x8B5CF6
	}
	return color
}

// CloseDecision - решение при закрытии кандидатуры
type CloseDecision = ApplicationStatus

func IsCloseDecision(s ApplicationStatus) bool {
	return s == ApplicationStatusRecruited || s == ApplicationStatusRejected
}
