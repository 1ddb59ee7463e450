package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"childcare/internal/domainerrors"
	"childcare/internal/metrics"
	"childcare/internal/models"
	"childcare/internal/repository"
)

// LinkStore persists links of one type keyed by pair. Implemented by the
// SQL link repositories and memory.LinkStore.
type LinkStore[L any] interface {
	FindByPair(ctx context.Context, pair models.Pair) (*L, error)
	ExistsByPair(ctx context.Context, pair models.Pair) (bool, error)
	ListByChild(ctx context.Context, childID int64) ([]L, error)
	ListByParent(ctx context.Context, parentID int64) ([]L, error)
	Insert(ctx context.Context, link L) error
	Update(ctx context.Context, link L) error
	DeleteByPair(ctx context.Context, pair models.Pair) error
}

// LinkMessages are the client-facing messages of one link kind
type LinkMessages struct {
	ListChildNotFound    string
	ListParentNotFound   string
	CreateChildNotFound  string
	CreateParentNotFound string
	AlreadyLinked        string
	UpdateNotFound       string
	RemoveNotFound       string
}

const (
	operationListForChild  = "list_for_child"
	operationListForParent = "list_for_parent"
	operationExists        = "exists"
	operationCreate        = "create"
	operationUpdate        = "update"
	operationRemove        = "remove"
)

// LinkManager manages the links between children and one kind of parent
// record. Children and parents must exist before a link is created, and a
// pair is linked at most once.
type LinkManager[L models.Link[L]] struct {
	kind     string
	links    LinkStore[L]
	children ExistsChecker
	parents  ExistsChecker
	messages LinkMessages
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

type linkConfig struct {
	logger  *zerolog.Logger
	metrics *metrics.Metrics
}

// LinkOption configures a LinkManager
type LinkOption func(*linkConfig)

func WithLogger(logger zerolog.Logger) LinkOption {
	return func(c *linkConfig) {
		c.logger = &logger
	}
}

func WithMetrics(m *metrics.Metrics) LinkOption {
	return func(c *linkConfig) {
		c.metrics = m
	}
}

// NewLinkManager constructs a LinkManager. kind labels logs and metrics.
func NewLinkManager[L models.Link[L]](kind string, links LinkStore[L], children, parents ExistsChecker, messages LinkMessages, opts ...LinkOption) *LinkManager[L] {
	cfg := linkConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := log.Logger
	if cfg.logger != nil {
		logger = *cfg.logger
	}

	return &LinkManager[L]{
		kind:     kind,
		links:    links,
		children: children,
		parents:  parents,
		messages: messages,
		logger:   logger.With().Str("link_kind", kind).Logger(),
		metrics:  cfg.metrics,
	}
}

// Kind returns the label of the managed link type
func (m *LinkManager[L]) Kind() string {
	return m.kind
}

// ListForChild returns every link of the child. The child must exist.
func (m *LinkManager[L]) ListForChild(ctx context.Context, childID int64) (links []L, err error) {
	defer m.observe(operationListForChild, time.Now(), &err)

	if err := m.requireExists(ctx, m.children, childID, m.messages.ListChildNotFound); err != nil {
		return nil, err
	}

	links, err = m.links.ListByChild(ctx, childID)
	if err != nil {
		return nil, m.storageFailure(err, "failed to list links", childID, 0)
	}
	return links, nil
}

// ListForParent returns every link of the parent. The parent must exist.
func (m *LinkManager[L]) ListForParent(ctx context.Context, parentID int64) (links []L, err error) {
	defer m.observe(operationListForParent, time.Now(), &err)

	if err := m.requireExists(ctx, m.parents, parentID, m.messages.ListParentNotFound); err != nil {
		return nil, err
	}

	links, err = m.links.ListByParent(ctx, parentID)
	if err != nil {
		return nil, m.storageFailure(err, "failed to list links", 0, parentID)
	}
	return links, nil
}

// LinkExists reports whether the pair is linked. Unknown IDs yield false.
func (m *LinkManager[L]) LinkExists(ctx context.Context, parentID, childID int64) (exists bool, err error) {
	defer m.observe(operationExists, time.Now(), &err)

	exists, err = m.links.ExistsByPair(ctx, models.Pair{ParentID: parentID, ChildID: childID})
	if err != nil {
		return false, m.storageFailure(err, "failed to check link", childID, parentID)
	}
	return exists, nil
}

// CreateLink stores a new link and returns it as persisted.
// Checks run in order: child exists, parent exists, pair not yet linked.
func (m *LinkManager[L]) CreateLink(ctx context.Context, link L) (created *L, err error) {
	defer m.observe(operationCreate, time.Now(), &err)
	pair := link.LinkPair()

	if err := m.requireExists(ctx, m.children, pair.ChildID, m.messages.CreateChildNotFound); err != nil {
		return nil, err
	}
	if err := m.requireExists(ctx, m.parents, pair.ParentID, m.messages.CreateParentNotFound); err != nil {
		return nil, err
	}

	linked, err := m.links.ExistsByPair(ctx, pair)
	if err != nil {
		return nil, m.storageFailure(err, "failed to check link", pair.ChildID, pair.ParentID)
	}
	if linked {
		return nil, m.domainFailure(domainerrors.CodeConflict, m.messages.AlreadyLinked, pair)
	}

	// The pair's unique key decides races between concurrent creates
	if err := m.links.Insert(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicateLink) {
			return nil, m.domainFailure(domainerrors.CodeConflict, m.messages.AlreadyLinked, pair)
		}
		return nil, m.storageFailure(err, "failed to create link", pair.ChildID, pair.ParentID)
	}

	created, err = m.links.FindByPair(ctx, pair)
	if err != nil {
		return nil, m.storageFailure(err, "failed to read created link", pair.ChildID, pair.ParentID)
	}
	if created == nil {
		return nil, m.storageFailure(errors.New("link missing after insert"), "storage inconsistency", pair.ChildID, pair.ParentID)
	}

	m.logger.Info().Int64("child_id", pair.ChildID).Int64("parent_id", pair.ParentID).Msg("link created")
	return created, nil
}

// UpdateLink overwrites the mutable fields of the link addressed by the
// pair of link. The pair itself never changes.
func (m *LinkManager[L]) UpdateLink(ctx context.Context, link L) (err error) {
	defer m.observe(operationUpdate, time.Now(), &err)
	pair := link.LinkPair()

	stored, err := m.links.FindByPair(ctx, pair)
	if err != nil {
		return m.storageFailure(err, "failed to read link", pair.ChildID, pair.ParentID)
	}
	if stored == nil {
		return m.domainFailure(domainerrors.CodeNotFound, m.messages.UpdateNotFound, pair)
	}

	if err := m.links.Update(ctx, (*stored).WithMutableFieldsFrom(link)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return m.domainFailure(domainerrors.CodeNotFound, m.messages.UpdateNotFound, pair)
		}
		return m.storageFailure(err, "failed to update link", pair.ChildID, pair.ParentID)
	}
	return nil
}

// RemoveLink deletes the link of the pair
func (m *LinkManager[L]) RemoveLink(ctx context.Context, parentID, childID int64) (err error) {
	defer m.observe(operationRemove, time.Now(), &err)
	pair := models.Pair{ParentID: parentID, ChildID: childID}

	linked, err := m.links.ExistsByPair(ctx, pair)
	if err != nil {
		return m.storageFailure(err, "failed to check link", childID, parentID)
	}
	if !linked {
		return m.domainFailure(domainerrors.CodeNotFound, m.messages.RemoveNotFound, pair)
	}

	if err := m.links.DeleteByPair(ctx, pair); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return m.domainFailure(domainerrors.CodeNotFound, m.messages.RemoveNotFound, pair)
		}
		return m.storageFailure(err, "failed to remove link", childID, parentID)
	}

	m.logger.Info().Int64("child_id", childID).Int64("parent_id", parentID).Msg("link removed")
	return nil
}

func (m *LinkManager[L]) requireExists(ctx context.Context, checker ExistsChecker, id int64, notFound string) error {
	exists, err := checker.Exists(ctx, id)
	if err != nil {
		return m.storageFailure(err, "failed to check record", 0, id)
	}
	if !exists {
		m.logger.Debug().Int64("id", id).Msg(notFound)
		return domainerrors.New(domainerrors.CodeNotFound, notFound)
	}
	return nil
}

func (m *LinkManager[L]) domainFailure(code domainerrors.Code, message string, pair models.Pair) error {
	m.logger.Debug().
		Str("code", string(code)).
		Int64("child_id", pair.ChildID).
		Int64("parent_id", pair.ParentID).
		Msg(message)
	return domainerrors.New(code, message)
}

func (m *LinkManager[L]) storageFailure(err error, message string, childID, parentID int64) error {
	m.logger.Error().
		Err(err).
		Int64("child_id", childID).
		Int64("parent_id", parentID).
		Msg(message)
	return domainerrors.Wrap(err, domainerrors.CodeInternal, message)
}

func (m *LinkManager[L]) observe(operation string, start time.Time, err *error) {
	m.metrics.ObserveLinkOperation(m.kind, operation, start, *err)
}
