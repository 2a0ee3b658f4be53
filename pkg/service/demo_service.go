// Package service implements the demo business operations on top of
// the repository and the logo store.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bitechdev/DemoManage/pkg/apperr"
	"github.com/bitechdev/DemoManage/pkg/common"
	"github.com/bitechdev/DemoManage/pkg/logger"
	"github.com/bitechdev/DemoManage/pkg/models"
	"github.com/bitechdev/DemoManage/pkg/repository"
)

const maxNameLength = 200

// LogoUpload is an optional logo file attached to a create or update.
type LogoUpload struct {
	Filename string
	File     io.Reader
}

// LogoStore is the slice of the media store the service needs.
type LogoStore interface {
	Upload(demoID, filename string, file io.Reader) (string, error)
	Delete(url string) error
}

// DemoService coordinates persistence, logo storage and activity
// logging for demo operations.
type DemoService struct {
	repo  *repository.DemoRepository
	logos LogoStore
}

func NewDemoService(repo *repository.DemoRepository, logos LogoStore) *DemoService {
	return &DemoService{repo: repo, logos: logos}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.InvalidData("Name is required.")
	}
	if len(name) > maxNameLength {
		return "", apperr.InvalidData(fmt.Sprintf("Name must be at most %d characters.", maxNameLength))
	}
	return name, nil
}

// Create stores a new demo. A failing logo upload downgrades to a
// create without a logo instead of failing the whole request.
func (s *DemoService) Create(ctx context.Context, name string, logo *LogoUpload, userID string) (*models.Demo, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	demo := &models.Demo{
		DemoID:    uuid.NewString(),
		Name:      name,
		Status:    models.StatusCreated,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
		UpdatedBy: userID,
	}

	if logo != nil {
		url, uploadErr := s.logos.Upload(demo.DemoID, logo.Filename, logo.File)
		if uploadErr != nil {
			logger.Warn("logo upload for new demo %s failed, creating without logo: %v", demo.DemoID, uploadErr)
		} else {
			demo.Logo = url
		}
	}

	if err := s.repo.Insert(ctx, demo); err != nil {
		if demo.Logo != "" {
			if cleanupErr := s.logos.Delete(demo.Logo); cleanupErr != nil {
				logger.Warn("orphan logo cleanup failed: %v", cleanupErr)
			}
		}
		return nil, err
	}

	logger.Activity("demo_created", "demo %s created by %s", demo.DemoID, userID)
	return demo, nil
}

// Read fetches one demo by ID.
func (s *DemoService) Read(ctx context.Context, demoID string) (*models.Demo, error) {
	return s.repo.GetByID(ctx, demoID)
}

// List runs the paginated dynamic query.
func (s *DemoService) List(ctx context.Context, params common.ListParams) ([]models.Demo, common.Pagination, error) {
	return s.repo.List(ctx, params)
}

// Update applies a partial update. The existence check and the row
// write run in one transaction; a new logo replaces the stored one and
// the old file is removed best-effort after the transaction commits.
func (s *DemoService) Update(ctx context.Context, demoID string, name *string, logo *LogoUpload, userID string) (*models.Demo, error) {
	values := map[string]interface{}{
		"status":     models.StatusUpdated,
		"updated_at": time.Now(),
		"updated_by": userID,
	}

	if name != nil {
		validated, err := validateName(*name)
		if err != nil {
			return nil, err
		}
		values["name"] = validated
	}

	var newLogo string
	if logo != nil {
		uploaded, err := s.logos.Upload(demoID, logo.Filename, logo.File)
		if err != nil {
			return nil, err
		}
		newLogo = uploaded
		values["logo"] = newLogo
	}

	var previousLogo string
	err := s.repo.RunInTransaction(ctx, func(tx *repository.DemoRepository) error {
		existing, err := tx.GetByID(ctx, demoID)
		if err != nil {
			return err
		}
		previousLogo = existing.Logo
		return tx.Update(ctx, demoID, values)
	})
	if err != nil {
		if newLogo != "" {
			if cleanupErr := s.logos.Delete(newLogo); cleanupErr != nil {
				logger.Warn("orphan logo cleanup failed: %v", cleanupErr)
			}
		}
		return nil, err
	}

	if newLogo != "" && previousLogo != "" {
		if err := s.logos.Delete(previousLogo); err != nil {
			logger.Warn("stale logo removal for demo %s failed: %v", demoID, err)
		}
	}

	logger.Activity("demo_updated", "demo %s updated by %s", demoID, userID)
	return s.repo.GetByID(ctx, demoID)
}

// Delete soft-deletes a demo. The logo file stays on disk; orphan
// cleanup reclaims it later.
func (s *DemoService) Delete(ctx context.Context, demoID, userID string) error {
	if err := s.repo.SoftDelete(ctx, demoID, userID); err != nil {
		return err
	}
	logger.Activity("demo_deleted", "demo %s deleted by %s", demoID, userID)
	return nil
}

// UpdateStatus sets the lifecycle state, optionally with error detail.
func (s *DemoService) UpdateStatus(ctx context.Context, demoID, status, errorMessage, errorUserMessage, userID string) (*models.Demo, error) {
	if !models.IsValidStatus(status) {
		return nil, apperr.InvalidData(fmt.Sprintf("Status %q is not a valid demo status.", status))
	}
	// Deletion goes through the delete operation so the audit columns
	// are set consistently.
	if status == models.StatusDeleted {
		return nil, apperr.InvalidData("Demos are deleted through the delete endpoint.")
	}
	if err := s.repo.UpdateStatus(ctx, demoID, status, errorMessage, errorUserMessage, userID); err != nil {
		return nil, err
	}
	logger.Activity("demo_status_changed", "demo %s status set to %s by %s", demoID, status, userID)
	return s.repo.GetByID(ctx, demoID)
}

// UpdateIsActive toggles the active flag.
func (s *DemoService) UpdateIsActive(ctx context.Context, demoID string, isActive bool, userID string) (*models.Demo, error) {
	if err := s.repo.UpdateIsActive(ctx, demoID, isActive, userID); err != nil {
		return nil, err
	}
	logger.Activity("demo_is_active_changed", "demo %s is_active set to %t by %s", demoID, isActive, userID)
	return s.repo.GetByID(ctx, demoID)
}
