package model

// Contact is the data structure for a person who got in touch with us.
// The Id is assigned by the service when the contact is created.
type Contact struct {
	Id      string `json:"id"      db:"id"`
	Email   string `json:"email"   db:"email"`
	Name    string `json:"name"    db:"name"`
	Subject string `json:"subject" db:"subject"`
}

// Message is the response body for operations that only report their outcome.
type Message struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ContactResponse is the response body of a successful update.
type ContactResponse struct {
	Status  int     `json:"status"`
	Contact Contact `json:"contact"`
}
