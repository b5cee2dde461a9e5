package applicationapimodels

import (
	"time"

	dbmodels "recruit-tools-backend/models/db"
)

type ApplicationLogView struct {
	ID           string                     `json:"id"`
	ActorID      string                     `json:"actor_id"`
	ActorName    string                     `json:"actor_name"`
	ActionType   dbmodels.ActionType        `json:"action_type"`
	TransitionID string                     `json:"transition_id,omitempty"`
	Changes      dbmodels.ApplicationChange `json:"changes"`
	CreatedAt    time.Time                  `json:"created_at"`
}

func ConvertLog(rec dbmodels.ApplicationLog) ApplicationLogView {
	return ApplicationLogView{
		ID:           rec.ID,
		ActorID:      rec.ActorID,
		ActorName:    rec.ActorName,
		ActionType:   rec.ActionType,
		TransitionID: rec.TransitionID,
		Changes:      rec.Changes,
		CreatedAt:    rec.CreatedAt,
	}
}
