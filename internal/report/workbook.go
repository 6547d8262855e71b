package report

import (
	"fmt"

	"sueta_backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Пользователи"
	FileName    = "users.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	revenueLabel = "Итого заработано (манат):"
)

var headers = []interface{}{"ID", "ФИО", "Дата рождения", "Telegram", "Статус"}

// Revenue - выручка по оплаченным билетам из переданного списка
func Revenue(users []models.User, price int) (paidCount int, total int) {
	for i := range users {
		if users[i].TicketStatus == models.TicketStatusPaid {
			paidCount++
		}
	}
	return paidCount, paidCount * price
}

// BuildWorkbook собирает xlsx: заголовок, строка на пользователя,
// пустая строка и итог по оплаченным.
func BuildWorkbook(users []models.User, price int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return nil, fmt.Errorf("stream writer: %w", err)
	}

	row := 1
	write := func(values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return sw.SetRow(cell, values)
	}

	if err := write(headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := range users {
		u := &users[i]
		values := []interface{}{
			u.ID,
			u.FullName(),
			u.BirthDate,
			u.TelegramOrPlaceholder(),
			u.TicketStatus.Label(),
		}
		if err := write(values); err != nil {
			return nil, fmt.Errorf("write user %d: %w", u.ID, err)
		}
	}

	_, total := Revenue(users, price)

	// пустая строка перед итогом
	row++
	if err := write([]interface{}{"", "", "", revenueLabel, total}); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
