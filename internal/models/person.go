package models

import "time"

// Child represents a child enrolled with the association
type Child struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	BirthDate string    `json:"birthDate,omitempty"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Guardian represents a legal guardian of one or more children
type Guardian struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorizedPerson represents someone allowed to pick up a child
type AuthorizedPerson struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChildRequest is the create/update payload for a child
type ChildRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// GuardianRequest is the create/update payload for a guardian
type GuardianRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// AuthorizedPersonRequest is the create/update payload for an authorized person
type AuthorizedPersonRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (r ChildRequest) ToChild(id int64) Child {
	return Child{ID: id, FirstName: r.FirstName, LastName: r.LastName, BirthDate: r.BirthDate}
}

func (r GuardianRequest) ToGuardian(id int64) Guardian {
	return Guardian{ID: id, FirstName: r.FirstName, LastName: r.LastName, Phone: r.Phone, Email: r.Email}
}

func (r AuthorizedPersonRequest) ToAuthorizedPerson(id int64) AuthorizedPerson {
	return AuthorizedPerson{ID: id, FirstName: r.FirstName, LastName: r.LastName, Phone: r.Phone}
}
