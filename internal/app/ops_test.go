package app_test

import (
	"bytes"
	"context"
	"testing"

	"sueta_backend/internal/app"
	"sueta_backend/internal/models"
	"sueta_backend/internal/report"
	"sueta_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPromoteAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, &models.User{Username: "future_admin"}, "password123")

	require.NoError(t, app.PromoteAdmin(context.Background(), db, "future_admin"))
	assert.True(t, testutil.ReloadUser(t, db, user.ID).IsAdmin)

	assert.Error(t, app.PromoteAdmin(context.Background(), db, "nobody_here"))
	assert.Error(t, app.PromoteAdmin(context.Background(), db, ""))
}

func TestExportUsers(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, &models.User{Username: "paid_user", TicketStatus: models.TicketStatusPaid}, "")
	testutil.CreateUser(t, db, &models.User{Username: "rejected_user", TicketStatus: models.TicketStatusRejected}, "")

	data, count, err := app.ExportUsers(context.Background(), db, "", 25)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "25", rows[4][4])

	_, count, err = app.ExportUsers(context.Background(), db, "paid", 25)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = app.ExportUsers(context.Background(), db, "bogus", 25)
	assert.Error(t, err)
}
