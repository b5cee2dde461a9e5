package xlsexport

import (
	"bytes"
	"strings"

	"recruit-tools-backend/models"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.Application) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Кандидат", "Пользователь", "Подразделение", "Статус", "Дата подачи", "Дата собеседования", "Дата закрытия", "Причина закрытия"}

func (i impl) ExportApplicationList(list []dbmodels.Application) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Кандидатуры")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.Application, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Кандидат"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.GetFIO()); err != nil {
			return row, err
		}

		// "Пользователь"
		col++
		if item.User != nil {
			if err := writeColumn(f, sheet, col, row, item.User.PlatformUsername); err != nil {
				return row, err
			}
		}

		// "Подразделение"
		col++
		if err := writeColumn(f, sheet, col, row, item.Service); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, stripEmoji(item.Status.Label())); err != nil {
			return row, err
		}

		// "Дата подачи"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Дата собеседования"
		col++
		if item.InterviewDate != nil {
			if err := writeColumn(f, sheet, col, row, item.InterviewDate.Format(models.InterviewDateLayout)); err != nil {
				return row, err
			}
		}

		// "Дата закрытия"
		col++
		if item.ClosedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.ClosedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Причина закрытия"
		col++
		if item.CloseReason != nil {
			if err := writeColumn(f, sheet, col, row, *item.CloseReason); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func stripEmoji(label string) string {
	if idx := strings.Index(label, " "); idx > 0 {
		return label[idx+1:]
	}
	return label
}
