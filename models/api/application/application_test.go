package applicationapimodels

import (
	"strings"
	"testing"
	"time"

	"recruit-tools-backend/models"

	"github.com/stretchr/testify/require"
)

func validSubmit() SubmitRequest {
	return SubmitRequest{
		Service:      "moderation",
		FirstName:    "Иван",
		LastName:     "Петров",
		BirthDate:    "01/01/1990",
		Seniority:    "2 года",
		Motivation:   "хочу помогать",
		Availability: []string{"будни 18:00-22:00"},
	}
}

func TestSubmitRequestValidate(t *testing.T) {
	t.Run(`filled request passes`, func(t *testing.T) {
		require.Nil(t, validSubmit().Validate())
	})

	t.Run(`blank fields are rejected`, func(t *testing.T) {
		req := validSubmit()
		req.Service = "   "
		require.NotNil(t, req.Validate())

		req = validSubmit()
		req.FirstName = ""
		require.NotNil(t, req.Validate())

		req = validSubmit()
		req.Availability = nil
		require.NotNil(t, req.Validate())
	})
}

func TestSetStatusRequestValidate(t *testing.T) {
	t.Run(`unknown status is rejected`, func(t *testing.T) {
		req := SetStatusRequest{Status: "approved"}
		require.NotNil(t, req.Validate())
	})

	t.Run(`interview date layout check`, func(t *testing.T) {
		req := SetStatusRequest{
			Status:        models.ApplicationStatusInterviewScheduled,
			InterviewDate: "15/04/2025 18:30",
		}
		require.Nil(t, req.Validate())
		date := req.GetInterviewDate()
		require.NotNil(t, date)
		require.Equal(t, time.Date(2025, 4, 15, 18, 30, 0, 0, time.UTC), *date)

		req.InterviewDate = "2025-04-15 18:30"
		require.NotNil(t, req.Validate())
	})
}

func TestCloseRequestValidate(t *testing.T) {
	t.Run(`only terminal decisions are accepted`, func(t *testing.T) {
		require.Nil(t, CloseRequest{Decision: models.ApplicationStatusRecruited}.Validate())
		require.Nil(t, CloseRequest{Decision: models.ApplicationStatusRejected}.Validate())
		require.NotNil(t, CloseRequest{Decision: models.ApplicationStatusReviewing}.Validate())
	})

	t.Run(`reason length limit`, func(t *testing.T) {
		req := CloseRequest{
			Decision: models.ApplicationStatusRejected,
			Reason:   strings.Repeat("а", 501),
		}
		require.NotNil(t, req.Validate())
	})
}
