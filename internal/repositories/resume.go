package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/karmamatch/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.StoredResume) error
	FindByID(id uuid.UUID) (*models.StoredResume, error)
	FindByIDs(ids []uuid.UUID) ([]models.StoredResume, error)
	List() ([]models.StoredResume, error)
	Count() (int64, error)
	FindPrimary() (*models.StoredResume, error)
	SetPrimary(id uuid.UUID) error
	Delete(id uuid.UUID) error
	UpdateIndexStatus(id uuid.UUID, status models.IndexStatus) error
	UpdateIndexError(id uuid.UUID, errorMsg string) error
	FindPendingIndexing(limit int) ([]models.StoredResume, error)
	RequeueAll() (int64, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create stores the resume. The first resume in an empty library becomes
// the primary one. Two concurrent first saves cannot both win: the loser
// trips idx_stored_resumes_single_primary and its transaction fails.
func (r *resumeRepository) Create(resume *models.StoredResume) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.StoredResume{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count resumes: %w", err)
		}
		if count == 0 {
			resume.IsPrimary = true
		}

		if err := tx.Create(resume).Error; err != nil {
			return fmt.Errorf("failed to create resume: %w", err)
		}
		return nil
	})
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.StoredResume, error) {
	var resume models.StoredResume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.StoredResume, error) {
	var resumes []models.StoredResume
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepository) List() ([]models.StoredResume, error) {
	var resumes []models.StoredResume
	if err := r.db.Order("is_primary DESC, uploaded_at DESC").Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

func (r *resumeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.StoredResume{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return count, nil
}

func (r *resumeRepository) FindPrimary() (*models.StoredResume, error) {
	var resume models.StoredResume
	if err := r.db.Where("is_primary = ?", true).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("primary resume: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find primary resume: %w", err)
	}
	return &resume, nil
}

// SetPrimary marks id as the primary resume. The flag is cleared on the
// other records first so the single-primary index holds at every step.
func (r *resumeRepository) SetPrimary(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.StoredResume{}).
			Where("id <> ? AND is_primary = ?", id, true).
			Update("is_primary", false).Error; err != nil {
			return fmt.Errorf("failed to clear primary flag: %w", err)
		}

		result := tx.Model(&models.StoredResume{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_primary": true,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to set primary resume: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// Delete removes the record. When the primary resume goes, the most recently
// uploaded remaining resume is promoted.
func (r *resumeRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var resume models.StoredResume
		if err := tx.Where("id = ?", id).First(&resume).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("resume %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to find resume: %w", err)
		}

		if err := tx.Delete(&models.StoredResume{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete resume: %w", err)
		}

		if !resume.IsPrimary {
			return nil
		}

		var next models.StoredResume
		err := tx.Order("uploaded_at DESC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find next primary resume: %w", err)
		}

		if err := tx.Model(&next).Update("is_primary", true).Error; err != nil {
			return fmt.Errorf("failed to promote primary resume: %w", err)
		}
		return nil
	})
}

func (r *resumeRepository) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus) error {
	updates := map[string]interface{}{
		"index_status": status,
		"updated_at":   time.Now(),
	}
	if status == models.IndexCompleted {
		updates["index_error"] = nil
	}

	result := r.db.Model(&models.StoredResume{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update index status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *resumeRepository) UpdateIndexError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.StoredResume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"index_status": models.IndexFailed,
			"index_error":  errorMsg,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update index error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *resumeRepository) FindPendingIndexing(limit int) ([]models.StoredResume, error) {
	var resumes []models.StoredResume
	err := r.db.
		Where("index_status = ?", models.IndexQueued).
		Order("uploaded_at ASC").
		Limit(limit).
		Find(&resumes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending resumes: %w", err)
	}
	return resumes, nil
}

// RequeueAll puts every stored resume back in the queued state and returns
// how many records were touched.
func (r *resumeRepository) RequeueAll() (int64, error) {
	result := r.db.Model(&models.StoredResume{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"index_status": models.IndexQueued,
			"index_error":  nil,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to requeue resumes: %w", result.Error)
	}
	return result.RowsAffected, nil
}
