package dto

// TicketOutcome - результат запроса билета
type TicketOutcome string

const (
	TicketIneligible       TicketOutcome = "ineligible"
	TicketAlreadyPurchased TicketOutcome = "already_purchased"
	TicketIssued           TicketOutcome = "issued"
)

// TicketResult - что показать на странице покупки билета
type TicketResult struct {
	Outcome    TicketOutcome
	Age        int
	MinAge     int
	MaxAge     int
	QRImageURL string
	Price      string // "25 AZN"
	Contact    string
}
