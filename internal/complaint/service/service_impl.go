package service

import (
	"context"
	"fmt"
	"strings"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	activityservice "github.com/grazebox/backoffice/internal/activity/service"
	"github.com/grazebox/backoffice/internal/clock"
	"github.com/grazebox/backoffice/internal/complaint/domain"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/idgen"
	"github.com/grazebox/backoffice/internal/normalize"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	"github.com/grazebox/backoffice/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store    *store.Store
	Log      *zap.Logger
	Clock    clock.Clock
	IDs      idgen.Generator
	Recorder *activityservice.Recorder
}

type Service struct {
	store    *store.Store
	log      *zap.Logger
	clock    clock.Clock
	ids      idgen.Generator
	recorder *activityservice.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		store:    p.Store,
		log:      p.Log.Named("complaint.service"),
		clock:    p.Clock,
		ids:      p.IDs,
		recorder: p.Recorder,
	}
}

func (s *Service) List(ctx context.Context, gr string) ([]domain.Complaint, error) {
	if strings.TrimSpace(gr) == "" {
		return nil, fault.Validationf("account identifier is required")
	}
	complaints := s.store.ComplaintsByGR(gr)
	if complaints == nil {
		complaints = []domain.Complaint{}
	}
	return complaints, nil
}

// Create files a complaint against one committed order and one recipe that
// appears in it. Compensation issuance and resolution are simultaneous, so
// the complaint is created already resolved.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Complaint, error) {
	for field, value := range map[string]string{
		"gr":                req.GR,
		"order_id":          req.OrderID,
		"recipe":            req.Recipe,
		"description":       req.Description,
		"compensation_type": req.CompensationType,
	} {
		if strings.TrimSpace(value) == "" {
			return domain.Complaint{}, fault.Validationf("missing required field: %s", field)
		}
	}
	if req.CompensationAmount == nil {
		return domain.Complaint{}, fault.Validationf("missing required field: compensation_amount")
	}
	if *req.CompensationAmount < 0 {
		return domain.Complaint{}, fault.Validationf("compensation amount cannot be negative")
	}
	if req.CompensationType != domain.CompensationCredit && req.CompensationType != domain.CompensationRefund {
		return domain.Complaint{}, fault.Validationf("invalid compensation type")
	}

	var created domain.Complaint
	err := s.store.RunCommand(func(tx *store.Tx) error {
		order, ok := tx.OrderByID(req.OrderID)
		if !ok || normalize.ID(order.GR) != normalize.ID(req.GR) {
			return fault.NotFoundf("order %s not found for %s", req.OrderID, normalize.ID(req.GR))
		}
		if order.Status != orderdomain.StatusCommitted {
			return fault.Conflictf("complaints can only be created for committed orders")
		}
		if !orderContainsRecipe(order, req.Recipe) {
			return fault.Validationf("recipe not found in selected order")
		}

		now := s.clock.Now()
		created = domain.Complaint{
			ComplaintID:      s.ids.ComplaintID(now),
			GR:               req.GR,
			OrderID:          req.OrderID,
			Recipe:           req.Recipe,
			Issue:            req.Description,
			CompensationType: req.CompensationType,
			Compensation:     *req.CompensationAmount,
			Status:           domain.StatusResolved,
			Date:             now.UTC().Format(activitydomain.TimeLayout),
			CreatedBy:        s.recorder.Operator(),
		}
		tx.AppendComplaint(created)

		s.recorder.RecordAction(tx, req.GR,
			activitydomain.CategoryComplaintCreated,
			"Complaint logged",
			fmt.Sprintf("Complaint %s created for order %s - %s of £%.2f issued",
				created.ComplaintID, req.OrderID, req.CompensationType, created.Compensation))
		return nil
	})
	if err != nil {
		return domain.Complaint{}, err
	}

	s.log.Info("complaint created",
		zap.String("gr", normalize.ID(req.GR)),
		zap.String("complaint_id", created.ComplaintID),
	)
	return created, nil
}

// Update mutates the editable complaint fields and stamps the modification
// mark whether or not any field actually changed.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Complaint, error) {
	if strings.TrimSpace(req.ComplaintID) == "" || strings.TrimSpace(req.GR) == "" {
		return domain.Complaint{}, fault.Validationf("missing complaint id or account identifier")
	}
	if req.CompensationAmount != nil && *req.CompensationAmount < 0 {
		return domain.Complaint{}, fault.Validationf("compensation amount cannot be negative")
	}

	var updated domain.Complaint
	err := s.store.RunCommand(func(tx *store.Tx) error {
		old, ok := tx.ComplaintByID(req.GR, req.ComplaintID)
		if !ok {
			return fault.NotFoundf("complaint %s not found for %s", req.ComplaintID, normalize.ID(req.GR))
		}

		updated = old
		if req.Description != nil {
			updated.Issue = *req.Description
		}
		if req.CompensationType != nil {
			updated.CompensationType = *req.CompensationType
		}
		if req.CompensationAmount != nil {
			updated.Compensation = *req.CompensationAmount
		}
		if req.Status != nil {
			updated.Status = *req.Status
		}
		updated.ModifiedDate = s.recorder.Now()
		updated.ModifiedBy = s.recorder.Operator()
		tx.UpdateComplaint(updated)

		s.recorder.RecordAction(tx, req.GR,
			activitydomain.CategoryComplaintUpdated,
			"Complaint modified",
			fmt.Sprintf("Complaint %s updated", req.ComplaintID))
		return nil
	})
	if err != nil {
		return domain.Complaint{}, err
	}

	s.log.Info("complaint updated", zap.String("complaint_id", req.ComplaintID))
	return updated, nil
}

// Delete physically removes the complaint.
func (s *Service) Delete(ctx context.Context, gr, complaintID string) error {
	if strings.TrimSpace(complaintID) == "" || strings.TrimSpace(gr) == "" {
		return fault.Validationf("missing complaint id or account identifier")
	}

	err := s.store.RunCommand(func(tx *store.Tx) error {
		removed, ok := tx.RemoveComplaint(gr, complaintID)
		if !ok {
			return fault.NotFoundf("complaint %s not found for %s", complaintID, normalize.ID(gr))
		}

		s.recorder.RecordAction(tx, gr,
			activitydomain.CategoryComplaintDeleted,
			"Complaint deleted",
			fmt.Sprintf("Complaint %s permanently removed (£%.2f %s)",
				complaintID, removed.Compensation, removed.CompensationType))
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("complaint deleted", zap.String("complaint_id", complaintID))
	return nil
}

func (s *Service) CountForAccount(ctx context.Context, gr string) (int, error) {
	if strings.TrimSpace(gr) == "" {
		return 0, fault.Validationf("account identifier is required")
	}
	return len(s.store.ComplaintsByGR(gr)), nil
}

func (s *Service) CountIndex(ctx context.Context) (map[string]int, error) {
	return s.store.ComplaintCountIndex(), nil
}

// orderContainsRecipe matches by display name, falling back to id for line
// items without one.
func orderContainsRecipe(order orderdomain.Order, recipe string) bool {
	for _, r := range order.Recipes {
		if r.Name == recipe || (r.Name == "" && r.ID == recipe) {
			return true
		}
	}
	return false
}
