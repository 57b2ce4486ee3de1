// Package export формирует выгрузки заявок: таблицу Excel и полный JSON-архив сайта.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"print3d-service/internal/dto"
	"print3d-service/pkg/constants"
)

const (
	SpreadsheetSheet = "Заявки"
	SpreadsheetMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout       = "02.01.2006 15:04:05"
	emptyCell        = "-"
)

// SpreadsheetHeaders - заголовки колонок в порядке вывода.
var SpreadsheetHeaders = []string{
	"ID заявки", "Дата создания", "Статус", "Тип клиента", "Компания", "ИНН", "Email", "Телефон",
	"Длина (мм)", "Ширина (мм)", "Высота (мм)", "Материал", "Цвет", "Заполнение (%)", "Количество",
	"Описание", "Файл",
}

// SpreadsheetColumnWidths - ширина каждой колонки в символах.
var SpreadsheetColumnWidths = []float64{10, 18, 12, 12, 20, 12, 25, 15, 10, 10, 10, 12, 10, 12, 10, 40, 20}

// SpreadsheetFileName - имя файла вида Заявки_3DPrint_31-01-2025.xlsx.
func SpreadsheetFileName(now time.Time) string {
	return "Заявки_3DPrint_" + now.Format("02-01-2006") + ".xlsx"
}

// OrderRow переводит заявку в строку таблицы. Пустые необязательные значения заменяются на "-".
func OrderRow(o dto.OrderDTO) []interface{} {
	customerType := constants.CustomerTypeLabels[constants.CustomerIndividual]
	if o.CustomerType == constants.CustomerLegal {
		customerType = constants.CustomerTypeLabels[constants.CustomerLegal]
	}
	status, ok := constants.StatusLabels[o.Status]
	if !ok {
		status = o.Status
	}

	return []interface{}{
		o.ID,
		o.CreatedAt.Local().Format(dateLayout),
		status,
		customerType,
		orDash(o.CompanyName),
		orDash(o.INN),
		o.Email,
		orDash(o.Phone),
		numberOrDash(o.Length),
		numberOrDash(o.Width),
		numberOrDash(o.Height),
		orDash(o.PlasticType),
		orDash(o.Color),
		intOrDash(o.Infill),
		o.Quantity,
		orDash(o.Description),
		orDash(o.FileName),
	}
}

// WriteOrdersSpreadsheet пишет xlsx: одна строка на заявку в исходном порядке.
func WriteOrdersSpreadsheet(w io.Writer, orders []dto.OrderDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SpreadsheetSheet); err != nil {
		return err
	}

	headers := make([]interface{}, len(SpreadsheetHeaders))
	for i, h := range SpreadsheetHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(SpreadsheetSheet, "A1", &headers); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(SpreadsheetHeaders))
	if err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SpreadsheetSheet, "A1", lastCol+"1", style); err != nil {
		return err
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := OrderRow(o)
		if err := f.SetSheetRow(SpreadsheetSheet, cell, &row); err != nil {
			return fmt.Errorf("строка %d: %w", i+2, err)
		}
	}

	for i, width := range SpreadsheetColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SpreadsheetSheet, col, col, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func orDash(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}

func numberOrDash(v float64) interface{} {
	if v == 0 {
		return emptyCell
	}
	return v
}

func intOrDash(v int) interface{} {
	if v == 0 {
		return emptyCell
	}
	return v
}
