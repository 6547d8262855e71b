package auth

import "sueta_backend/internal/models"

// IsAdmin проверяет является ли пользователь администратором
func IsAdmin(user *models.User) bool {
	return user != nil && user.IsAdmin
}

// CanManagePayments подтверждение/отклонение оплаты и просмотр статуса билета
func CanManagePayments(user *models.User) bool {
	return IsAdmin(user)
}

// CanViewReports список участников и выгрузка в Excel
func CanViewReports(user *models.User) bool {
	return IsAdmin(user)
}
