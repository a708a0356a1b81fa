package domain

import "time"

// ContactPreference is how the visitor wants to be reached.
type ContactPreference string

const (
	PreferEmail    ContactPreference = "email"
	PreferPhone    ContactPreference = "phone"
	PreferWhatsApp ContactPreference = "whatsapp"
)

// ContactPreferences lists the accepted preference values in display order.
var ContactPreferences = []string{string(PreferEmail), string(PreferPhone), string(PreferWhatsApp)}

// Contact is a submitted contact form.
type Contact struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Age        string            `json:"age,omitempty"`
	Site       string            `json:"site,omitempty"`
	Date       string            `json:"date,omitempty"`
	Time       string            `json:"time,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Preference ContactPreference `json:"preference"`
	Interests  []string          `json:"interests"`
	Color      string            `json:"color,omitempty"`
	Level      string            `json:"level,omitempty"`
	Message    string            `json:"message"`
	Attachment string            `json:"attachment,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
