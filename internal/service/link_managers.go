package service

import (
	"context"

	"childcare/internal/models"
)

const (
	KindGuardian         = "guardian"
	KindAuthorizedPerson = "authorized_person"

	msgListChildNotFound = "the specified child does not exist"
	msgChildNotFound     = "child does not exist"
	msgUpdateNotFound    = "no link found to update"
	msgRemoveNotFound    = "no link found to remove"
)

// GuardianChildLinkMessages are the messages reported by the guardian link manager
var GuardianChildLinkMessages = LinkMessages{
	ListChildNotFound:    msgListChildNotFound,
	ListParentNotFound:   "the specified guardian does not exist",
	CreateChildNotFound:  msgChildNotFound,
	CreateParentNotFound: "guardian does not exist",
	AlreadyLinked:        "link already exists between this guardian and this child",
	UpdateNotFound:       msgUpdateNotFound,
	RemoveNotFound:       msgRemoveNotFound,
}

// AuthorizedPersonChildLinkMessages are the messages reported by the authorized person link manager
var AuthorizedPersonChildLinkMessages = LinkMessages{
	ListChildNotFound:    msgListChildNotFound,
	ListParentNotFound:   "the specified authorized person does not exist",
	CreateChildNotFound:  msgChildNotFound,
	CreateParentNotFound: "authorized person does not exist",
	AlreadyLinked:        "link already exists between this authorized person and this child",
	UpdateNotFound:       msgUpdateNotFound,
	RemoveNotFound:       msgRemoveNotFound,
}

// GuardianChildLinkManager manages guardian/child links
type GuardianChildLinkManager struct {
	*LinkManager[models.GuardianChildLink]
}

// NewGuardianChildLinkManager creates a guardian link manager
func NewGuardianChildLinkManager(links LinkStore[models.GuardianChildLink], children, guardians ExistsChecker, opts ...LinkOption) *GuardianChildLinkManager {
	return &GuardianChildLinkManager{
		LinkManager: NewLinkManager(KindGuardian, links, children, guardians, GuardianChildLinkMessages, opts...),
	}
}

// GuardiansForChild lists the guardian links of a child
func (m *GuardianChildLinkManager) GuardiansForChild(ctx context.Context, childID int64) ([]models.GuardianChildLink, error) {
	return m.ListForChild(ctx, childID)
}

// ChildrenForGuardian lists the child links of a guardian
func (m *GuardianChildLinkManager) ChildrenForGuardian(ctx context.Context, guardianID int64) ([]models.GuardianChildLink, error) {
	return m.ListForParent(ctx, guardianID)
}

// AuthorizedPersonChildLinkManager manages authorized person/child links
type AuthorizedPersonChildLinkManager struct {
	*LinkManager[models.AuthorizedPersonChildLink]
}

// NewAuthorizedPersonChildLinkManager creates an authorized person link manager
func NewAuthorizedPersonChildLinkManager(links LinkStore[models.AuthorizedPersonChildLink], children, persons ExistsChecker, opts ...LinkOption) *AuthorizedPersonChildLinkManager {
	return &AuthorizedPersonChildLinkManager{
		LinkManager: NewLinkManager(KindAuthorizedPerson, links, children, persons, AuthorizedPersonChildLinkMessages, opts...),
	}
}

func (m *AuthorizedPersonChildLinkManager) AuthorizedPersonsForChild(ctx context.Context, childID int64) ([]models.AuthorizedPersonChildLink, error) {
	return m.ListForChild(ctx, childID)
}

func (m *AuthorizedPersonChildLinkManager) ChildrenForAuthorizedPerson(ctx context.Context, personID int64) ([]models.AuthorizedPersonChildLink, error) {
	return m.ListForParent(ctx, personID)
}
