package model

import "gitlab.com/dirk.krummacker/contacts-store/pkg/model"

// ContactPatch holds the fields of a partial update. A nil field was not supplied by the
// client and keeps its stored value.
type ContactPatch struct {
	Email   *string `json:"email,omitempty"`
	Name    *string `json:"name,omitempty"`
	Subject *string `json:"subject,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (p ContactPatch) Empty() bool {
	return p.Email == nil && p.Name == nil && p.Subject == nil
}

// ApplyTo returns a copy of the contact with the supplied fields overwritten.
func (p ContactPatch) ApplyTo(c model.Contact) model.Contact {
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Subject != nil {
		c.Subject = *p.Subject
	}
	return c
}

// ContactForm holds the form fields of a new contact.
type ContactForm struct {
	Email   string `form:"email"`
	Name    string `form:"name"`
	Subject string `form:"subject"`
}

// DeleteAllForm holds the confirmation for deleting all contacts.
type DeleteAllForm struct {
	All string `form:"all"`
}
