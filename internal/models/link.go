package models

import "time"

// Pair identifies a link by its two ends. ParentID is the guardian or
// authorized person id depending on the link type.
type Pair struct {
	ParentID int64
	ChildID  int64
}

// Link is implemented by the link entity types so they can share one
// manager and one in-memory store
type Link[L any] interface {
	LinkPair() Pair
	// WithMutableFieldsFrom returns a copy of the receiver carrying the
	// updatable fields of other. The pair and timestamps are kept.
	WithMutableFieldsFrom(other L) L
	// Touched returns a copy stamped as written at now
	Touched(now time.Time) L
}

// GuardianChildLink ties a guardian to a child
type GuardianChildLink struct {
	GuardianID   int64     `json:"guardianId"`
	ChildID      int64     `json:"childId"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (l GuardianChildLink) LinkPair() Pair {
	return Pair{ParentID: l.GuardianID, ChildID: l.ChildID}
}

func (l GuardianChildLink) WithMutableFieldsFrom(other GuardianChildLink) GuardianChildLink {
	l.Relationship = other.Relationship
	return l
}

func (l GuardianChildLink) Touched(now time.Time) GuardianChildLink {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	return l
}

// AuthorizedPersonChildLink ties an authorized pickup person to a child
type AuthorizedPersonChildLink struct {
	AuthorizedPersonID int64     `json:"authorizedPersonId"`
	ChildID            int64     `json:"childId"`
	Relationship       string    `json:"relationship"`
	EmergencyContact   bool      `json:"emergencyContact"`
	Comment            string    `json:"comment"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (l AuthorizedPersonChildLink) LinkPair() Pair {
	return Pair{ParentID: l.AuthorizedPersonID, ChildID: l.ChildID}
}

func (l AuthorizedPersonChildLink) WithMutableFieldsFrom(other AuthorizedPersonChildLink) AuthorizedPersonChildLink {
	l.Relationship = other.Relationship
	l.EmergencyContact = other.EmergencyContact
	l.Comment = other.Comment
	return l
}

func (l AuthorizedPersonChildLink) Touched(now time.Time) AuthorizedPersonChildLink {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	return l
}

// GuardianChildLinkRequest is the POST/PUT payload for a guardian link
type GuardianChildLinkRequest struct {
	GuardianID   int64  `json:"guardianId"`
	ChildID      int64  `json:"childId"`
	Relationship string `json:"relationship"`
}

// AuthorizedPersonChildLinkRequest is the POST/PUT payload for an authorized person link.
// EmergencyContact is a pointer so an omitted flag can be told apart from false.
type AuthorizedPersonChildLinkRequest struct {
	AuthorizedPersonID int64  `json:"authorizedPersonId"`
	ChildID            int64  `json:"childId"`
	Relationship       string `json:"relationship"`
	EmergencyContact   *bool  `json:"emergencyContact"`
	Comment            string `json:"comment"`
}

// NewGuardianChildLink converts a request payload into a link entity
func NewGuardianChildLink(req GuardianChildLinkRequest) GuardianChildLink {
	return GuardianChildLink{
		GuardianID:   req.GuardianID,
		ChildID:      req.ChildID,
		Relationship: req.Relationship,
	}
}

// NewAuthorizedPersonChildLink converts a request payload into a link entity.
// An unset emergency contact flag becomes false.
func NewAuthorizedPersonChildLink(req AuthorizedPersonChildLinkRequest) AuthorizedPersonChildLink {
	emergency := false
	if req.EmergencyContact != nil {
		emergency = *req.EmergencyContact
	}
	return AuthorizedPersonChildLink{
		AuthorizedPersonID: req.AuthorizedPersonID,
		ChildID:            req.ChildID,
		Relationship:       req.Relationship,
		EmergencyContact:   emergency,
		Comment:            req.Comment,
	}
}
