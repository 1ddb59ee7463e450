package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"childcare/internal/domainerrors"
	"childcare/internal/models"
	"childcare/internal/repository"
	"childcare/internal/validation"
)

// RecordStore persists one kind of roster record
type RecordStore[T any] interface {
	Create(ctx context.Context, record T) (*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, record T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Roster handles CRUD for one kind of record: children, guardians or
// authorized persons. R is the request payload type.
type Roster[T any, R any] struct {
	store    RecordStore[T]
	noun     string
	validate func(R) error
	build    func(req R, id int64) T
}

func NewChildRoster(store RecordStore[models.Child]) *Roster[models.Child, models.ChildRequest] {
	return &Roster[models.Child, models.ChildRequest]{
		store:    store,
		noun:     "child",
		validate: validation.ValidateChild,
		build:    models.ChildRequest.ToChild,
	}
}

func NewGuardianRoster(store RecordStore[models.Guardian]) *Roster[models.Guardian, models.GuardianRequest] {
	return &Roster[models.Guardian, models.GuardianRequest]{
		store:    store,
		noun:     "guardian",
		validate: validation.ValidateGuardian,
		build:    models.GuardianRequest.ToGuardian,
	}
}

func NewAuthorizedPersonRoster(store RecordStore[models.AuthorizedPerson]) *Roster[models.AuthorizedPerson, models.AuthorizedPersonRequest] {
	return &Roster[models.AuthorizedPerson, models.AuthorizedPersonRequest]{
		store:    store,
		noun:     "authorized person",
		validate: validation.ValidateAuthorizedPerson,
		build:    models.AuthorizedPersonRequest.ToAuthorizedPerson,
	}
}

func (r *Roster[T, R]) notFound() error {
	return domainerrors.New(domainerrors.CodeNotFound, r.noun+" not found")
}

func (r *Roster[T, R]) internal(err error, message string) error {
	log.Error().Err(err).Str("record", r.noun).Msg(message)
	return domainerrors.Wrap(err, domainerrors.CodeInternal, message)
}

func (r *Roster[T, R]) Create(ctx context.Context, req R) (*T, error) {
	if err := r.validate(req); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeBadRequest, err.Error())
	}

	record, err := r.store.Create(ctx, r.build(req, 0))
	if err != nil {
		return nil, r.internal(err, "failed to create "+r.noun)
	}
	if record == nil {
		return nil, r.internal(errors.New("record missing after insert"), "storage inconsistency")
	}
	return record, nil
}

func (r *Roster[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	record, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, r.internal(err, "failed to get "+r.noun)
	}
	if record == nil {
		return nil, r.notFound()
	}
	return record, nil
}

func (r *Roster[T, R]) List(ctx context.Context) ([]T, error) {
	records, err := r.store.List(ctx)
	if err != nil {
		return nil, r.internal(err, "failed to list "+r.noun+" records")
	}
	return records, nil
}

func (r *Roster[T, R]) Update(ctx context.Context, id int64, req R) (*T, error) {
	if err := r.validate(req); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeBadRequest, err.Error())
	}

	record, err := r.store.Update(ctx, r.build(req, id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, r.notFound()
	}
	if err != nil {
		return nil, r.internal(err, "failed to update "+r.noun)
	}
	if record == nil {
		return nil, r.notFound()
	}
	return record, nil
}

// Delete removes the record. Links to it are removed by the storage layer.
func (r *Roster[T, R]) Delete(ctx context.Context, id int64) error {
	err := r.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return r.notFound()
	}
	if err != nil {
		return r.internal(err, "failed to delete "+r.noun)
	}
	return nil
}
