package models

import "strings"

type User struct {
	BaseModel
	FirstName    string       `gorm:"type:varchar(50);not null"`
	LastName     string       `gorm:"type:varchar(50);not null"`
	MiddleName   string       `gorm:"type:varchar(50);not null"`
	BirthDate    string       `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Telegram     string       `gorm:"type:varchar(100)"`
	Username     string       `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string       `gorm:"column:password;type:varchar(200);not null"`
	TicketStatus TicketStatus `gorm:"type:varchar(50);not null;default:'not_paid';index"`
	IsAdmin      bool         `gorm:"not null;default:false"`
	Gender       Gender       `gorm:"type:varchar(10);not null"`
}

// FullName собирает ФИО в порядке "фамилия имя отчество"
func (u *User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.LastName, u.FirstName, u.MiddleName}, " "))
}

// TelegramOrPlaceholder возвращает telegram или "-", если он не указан
func (u *User) TelegramOrPlaceholder() string {
	if u.Telegram == "" {
		return "-"
	}
	return u.Telegram
}
