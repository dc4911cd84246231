package notify

import "errors"

var (
	ErrMissingFields = errors.New("missing fields")
	ErrDelivery      = errors.New("email delivery failed")
)

type ContactMessage struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SubscriptionRequest struct {
	Email string `json:"email"`
}

type TeamUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// Email is a plain text message handed to the outbound mail provider
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}
