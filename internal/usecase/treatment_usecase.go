package usecase

import (
	"context"
	"errors"
	"strings"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTreatmentNotFound = errors.New("treatment not found")
	ErrTreatmentExists   = errors.New("treatment with this name already exists")
)

type TreatmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	GetAll(ctx context.Context, includeInactive bool, page, limit int) ([]dto.TreatmentResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error)
}

type treatmentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	treatmentRepo repository.TreatmentRepository
	auditService  service.AuditService
}

func NewTreatmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	treatmentRepo repository.TreatmentRepository,
	auditService service.AuditService,
) TreatmentUsecase {
	return &treatmentUsecase{
		db:            db,
		log:           log,
		treatmentRepo: treatmentRepo,
		auditService:  auditService,
	}
}

func (u *treatmentUsecase) Create(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	if req.Price.IsNegative() {
		return nil, &ValidationError{Fields: map[string]string{"price": "price must not be negative"}}
	}

	treatment := &entity.Treatment{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.treatmentRepo.Create(ctx, tx, treatment); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, entity.AuditActionTreatmentCreate, entity.AuditEntityTreatment,
			treatment.ID.String(), converter.TreatmentToResponse(treatment))
	})
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrTreatmentExists
		}
		u.log.Warnf("Failed to create treatment: %+v", err)
		return nil, err
	}

	return converter.TreatmentToResponse(treatment), nil
}

func (u *treatmentUsecase) GetAll(ctx context.Context, includeInactive bool, page, limit int) ([]dto.TreatmentResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	offset := (page - 1) * limit

	treatments, total, err := u.treatmentRepo.FindAll(ctx, u.db, !includeInactive, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find treatments: %+v", err)
		return nil, 0, err
	}

	return converter.TreatmentsToResponses(treatments), total, nil
}

func (u *treatmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.TreatmentResponse, error) {
	treatment, err := u.treatmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s: %+v", id, err)
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	return converter.TreatmentToResponse(treatment), nil
}

// Update replaces the catalog entry. Existing appointments keep the name
// they were booked with.
func (u *treatmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	if req.Price.IsNegative() {
		return nil, &ValidationError{Fields: map[string]string{"price": "price must not be negative"}}
	}

	var updated *entity.Treatment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		treatment, err := u.treatmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if treatment == nil {
			return ErrTreatmentNotFound
		}

		before := converter.TreatmentToResponse(treatment)

		treatment.Name = strings.TrimSpace(req.Name)
		treatment.Description = req.Description
		treatment.DurationMinutes = req.DurationMinutes
		treatment.Price = req.Price
		treatment.IsActive = req.IsActive

		if err := u.treatmentRepo.Update(ctx, tx, treatment); err != nil {
			return err
		}
		updated = treatment

		return u.auditService.LogUpdate(ctx, tx, entity.AuditActionTreatmentUpdate, entity.AuditEntityTreatment,
			id.String(), before, converter.TreatmentToResponse(treatment))
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTreatmentNotFound):
			return nil, err
		case errors.Is(err, repository.ErrUniqueViolation):
			return nil, ErrTreatmentExists
		}
		u.log.Warnf("Failed to update treatment %s: %+v", id, err)
		return nil, err
	}

	return converter.TreatmentToResponse(updated), nil
}
