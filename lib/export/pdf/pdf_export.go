package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	"recruit-tools-backend/models"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateDossier собирает pdf-досье кандидатуры: анкета и журнал действий
func GenerateDossier(app dbmodels.Application, logs []dbmodels.ApplicationLog) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateDossier panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, fmt.Sprintf("Кандидатура: %v", app.GetFIO()), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	_, lineHt := pdf.GetFontSize()
	lineHt += 2

	writeField(pdf, lineHt, "Подразделение", app.Service)
	writeField(pdf, lineHt, "Статус", app.Status.Label())
	writeField(pdf, lineHt, "Дата рождения", app.BirthDate)
	writeField(pdf, lineHt, "Опыт", app.Seniority)
	writeField(pdf, lineHt, "Доступность", strings.Join(app.Availability, ", "))
	if app.User != nil {
		writeField(pdf, lineHt, "Пользователь", app.User.PlatformUsername)
	}
	if app.InterviewDate != nil {
		writeField(pdf, lineHt, "Собеседование", app.InterviewDate.Format(models.InterviewDateLayout))
	}
	if app.ClosedAt != nil {
		writeField(pdf, lineHt, "Закрыта", app.ClosedAt.Format("02.01.2006 15:04"))
	}
	if app.CloseReason != nil {
		writeField(pdf, lineHt, "Причина закрытия", *app.CloseReason)
	}

	pdf.Ln(lineHt)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, lineHt, "Мотивация", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, lineHt, app.Motivation, "", "L", false)

	if len(logs) > 0 {
		pdf.Ln(lineHt)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, lineHt, "Журнал действий", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, rec := range logs {
			line := fmt.Sprintf("%v  %v  %v",
				rec.CreatedAt.Format("02.01.2006 15:04"),
				rec.ActorName,
				rec.Changes.Description)
			pdf.MultiCell(0, lineHt, line, "", "L", false)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, lineHt float64, name, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(55, lineHt, name+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, lineHt, value, "", "L", false)
}
