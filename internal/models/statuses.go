package models

type TicketStatus string
type Gender string

const (
	TicketStatusNotPaid  TicketStatus = "not_paid"
	TicketStatusPaid     TicketStatus = "paid"
	TicketStatusRejected TicketStatus = "rejected"

	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid проверяет, что статус входит в закрытый набор из трёх значений
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusNotPaid, TicketStatusPaid, TicketStatusRejected:
		return true
	default:
		return false
	}
}

// Label возвращает подпись статуса для отчётов и страниц админки
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusPaid:
		return "Оплачен"
	case TicketStatusNotPaid:
		return "Не оплачен"
	case TicketStatusRejected:
		return "Отклонён"
	default:
		return "-"
	}
}

// ParseGender принимает только точные значения enum ("male", "female")
func ParseGender(value string) (Gender, bool) {
	switch Gender(value) {
	case GenderMale, GenderFemale:
		return Gender(value), true
	default:
		return "", false
	}
}
