package notification

import (
	"time"

	"github.com/google/uuid"
)

// Message is a rendered email handed to a Transport.
type Message struct {
	ID        uuid.UUID `json:"id"`
	To        string    `json:"to"`
	From      string    `json:"from"`
	Subject   string    `json:"subject"`
	HTMLBody  string    `json:"html_body"`
	CreatedAt time.Time `json:"created_at"`
}
