package report

import (
	"bytes"
	"testing"

	"sueta_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	users := []models.User{
		{BaseModel: models.BaseModel{ID: 1}, LastName: "Алиев", FirstName: "Тимур", MiddleName: "Ровшанович", BirthDate: "2001-01-01", Telegram: "@timur", TicketStatus: models.TicketStatusPaid},
		{BaseModel: models.BaseModel{ID: 2}, LastName: "Гусейнова", FirstName: "Лейла", MiddleName: "Эльчиновна", BirthDate: "2002-02-02", TicketStatus: models.TicketStatusNotPaid},
		{BaseModel: models.BaseModel{ID: 3}, LastName: "Керимов", FirstName: "Эмиль", MiddleName: "Назимович", BirthDate: "2003-03-03", TicketStatus: models.TicketStatusRejected},
	}

	data, err := BuildWorkbook(users, 25)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, SheetName, f.GetSheetName(0))

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, []string{"ID", "ФИО", "Дата рождения", "Telegram", "Статус"}, rows[0])
	assert.Equal(t, []string{"1", "Алиев Тимур Ровшанович", "2001-01-01", "@timur", "Оплачен"}, rows[1])
	assert.Equal(t, []string{"2", "Гусейнова Лейла Эльчиновна", "2002-02-02", "-", "Не оплачен"}, rows[2])
	assert.Equal(t, "Отклонён", rows[3][4])
	assert.Empty(t, rows[4])
	assert.Equal(t, "Итого заработано (манат):", rows[5][3])
	assert.Equal(t, "25", rows[5][4])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	data, err := BuildWorkbook(nil, 25)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0", rows[2][4])
}

func TestRevenue(t *testing.T) {
	users := []models.User{
		{TicketStatus: models.TicketStatusPaid},
		{TicketStatus: models.TicketStatusPaid},
		{TicketStatus: models.TicketStatusRejected},
	}
	paid, total := Revenue(users, 25)
	assert.Equal(t, 2, paid)
	assert.Equal(t, 50, total)
}
