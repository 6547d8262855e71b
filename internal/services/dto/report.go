package dto

import "sueta_backend/internal/models"

// ExportFile - готовый к отдаче файл выгрузки
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UserListView - список участников для админки
type UserListView struct {
	Users        []models.User
	StatusFilter string
	PaidCount    int
	Revenue      int
	// TotalPaid - оплаченные билеты по всей базе, независимо от фильтра
	TotalPaid int64
}
