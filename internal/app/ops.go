package app

import (
	"context"
	"errors"
	"fmt"

	"sueta_backend/internal/models"
	"sueta_backend/internal/report"
	"sueta_backend/internal/repositories"

	"gorm.io/gorm"
)

// PromoteAdmin выдает права администратора существующему пользователю
func PromoteAdmin(ctx context.Context, db *gorm.DB, username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	err := repositories.NewUserRepository(db).SetAdmin(ctx, username, true)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("user %q not found", username)
	}
	return err
}

// ExportUsers строит тот же xlsx, что и /export_excel, без проверки сессии
func ExportUsers(ctx context.Context, db *gorm.DB, status string, price int) ([]byte, int, error) {
	if status != "" && !models.TicketStatus(status).IsValid() {
		return nil, 0, fmt.Errorf("unknown ticket status %q", status)
	}

	users, err := repositories.NewUserRepository(db).FindByTicketStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}

	data, err := report.BuildWorkbook(users, price)
	if err != nil {
		return nil, 0, err
	}
	return data, len(users), nil
}
