package repositories

import (
	"github.com/campuslink-app/backend/internal/models"
	"gorm.io/gorm"
)

// InvitationRepository defines the interface for society invitation operations
type InvitationRepository interface {
	CreateInvitation(invitation *models.SocietyInvitation) error
	GetByCode(code string) (*models.SocietyInvitation, error)
	ListBySocietyID(societyID uint, status string) ([]models.SocietyInvitation, error)
	UpdateInvitation(invitation *models.SocietyInvitation) error
}

type postgresInvitationRepository struct {
	db *gorm.DB
}

func NewPostgresInvitationRepository(db *gorm.DB) InvitationRepository {
	return &postgresInvitationRepository{db: db}
}

func (r *postgresInvitationRepository) CreateInvitation(invitation *models.SocietyInvitation) error {
	return r.db.Create(invitation).Error
}

func (r *postgresInvitationRepository) GetByCode(code string) (*models.SocietyInvitation, error) {
	var invitation models.SocietyInvitation
	if err := r.db.Where("code = ?", code).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *postgresInvitationRepository) ListBySocietyID(societyID uint, status string) ([]models.SocietyInvitation, error) {
	tx := r.db.Where("society_id = ?", societyID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	var invitations []models.SocietyInvitation
	err := tx.Order("created_at desc").Find(&invitations).Error
	return invitations, err
}

func (r *postgresInvitationRepository) UpdateInvitation(invitation *models.SocietyInvitation) error {
	return r.db.Save(invitation).Error
}
