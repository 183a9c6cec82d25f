package person

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/personapi/internal/platform/apperr"
	"github.com/taibuivan/personapi/internal/platform/dberr"
	"github.com/taibuivan/personapi/internal/platform/validate"
	"github.com/taibuivan/personapi/pkg/pointer"
)

// resourceName is used in not-found messages.
const resourceName = "Person"

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListPersons(context context.Context, limit, offset int) ([]*Person, int, error) {
	return service.repo.ListPersons(context, limit, offset)
}

func (service *Service) GetPerson(context context.Context, id int64) (*Person, error) {
	p, err := service.repo.GetPerson(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, resourceName)
	}
	return p, nil
}

// CreatePerson validates payload against the Create view and stores a new
// person. Any id in the payload is ignored.
func (service *Service) CreatePerson(context context.Context, payload Payload) (*Person, error) {
	if err := Validate(ViewCreate, payload); err != nil {
		return nil, err
	}

	p := &Person{
		Name:        pointer.Val(payload.Name),
		Description: pointer.Val(payload.Description),
	}

	if err := service.repo.CreatePerson(context, p); err != nil {
		return nil, err
	}

	if p.ID <= 0 {
		return nil, apperr.Internal(fmt.Errorf("person: store assigned non-positive id %d", p.ID))
	}

	service.logger.Info("person_created", slog.Int64("person_id", p.ID))
	return p, nil
}

// UpdatePerson validates payload against the Update view and overwrites the
// person with the given id. The payload id may be omitted; when present it
// must equal id.
func (service *Service) UpdatePerson(context context.Context, id int64, payload Payload) (*Person, error) {
	if payload.ID == nil {
		payload.ID = &id
	} else if *payload.ID != id {
		validator := &validate.Validator{}
		return nil, validator.Custom(FieldID, true, apperr.RuleMismatch, "Must match the id in the URL").Err()
	}

	if err := Validate(ViewUpdate, payload); err != nil {
		return nil, err
	}

	p := &Person{
		ID:          id,
		Name:        pointer.Val(payload.Name),
		Description: pointer.Val(payload.Description),
	}

	if err := service.repo.UpdatePerson(context, p); err != nil {
		return nil, dberr.NotFound(err, resourceName)
	}

	service.logger.Info("person_updated", slog.Int64("person_id", p.ID))
	return p, nil
}

func (service *Service) DeletePerson(context context.Context, id int64) error {
	if err := service.repo.DeletePerson(context, id); err != nil {
		return dberr.NotFound(err, resourceName)
	}

	service.logger.Warn("person_deleted", slog.Int64("person_id", id))
	return nil
}
