package repositories

import (
	"github.com/campuslink-app/backend/internal/models"
	"gorm.io/gorm"
)

// SocietyRepository defines the interface for society data operations
type SocietyRepository interface {
	CreateSociety(society *models.Society) error
	GetSocietyByID(id uint) (*models.Society, error)
	UpdateSociety(society *models.Society) error
	DeleteSociety(id uint) error
	ListSocieties(instituteID uint, query string, page, limit int) ([]models.Society, int64, error)
	IncrementFollowersCount(id uint) error
	DecrementFollowersCount(id uint) error
	CountSocieties() (int64, error)
	TopSocietiesByFollowers(limit int) ([]models.Society, error)
}

// PostgresSocietyRepository implements SocietyRepository for PostgreSQL
type PostgresSocietyRepository struct {
	db *gorm.DB
}

// NewPostgresSocietyRepository creates a new PostgresSocietyRepository
func NewPostgresSocietyRepository(db *gorm.DB) *PostgresSocietyRepository {
	return &PostgresSocietyRepository{db: db}
}

func (r *PostgresSocietyRepository) CreateSociety(society *models.Society) error {
	return r.db.Create(society).Error
}

func (r *PostgresSocietyRepository) GetSocietyByID(id uint) (*models.Society, error) {
	var society models.Society
	if err := r.db.First(&society, id).Error; err != nil {
		return nil, err
	}
	return &society, nil
}

func (r *PostgresSocietyRepository) UpdateSociety(society *models.Society) error {
	return r.db.Save(society).Error
}

func (r *PostgresSocietyRepository) DeleteSociety(id uint) error {
	return r.db.Delete(&models.Society{}, id).Error
}

// ListSocieties returns a paginated society listing, optionally filtered by
// institute and a name/category search term.
func (r *PostgresSocietyRepository) ListSocieties(instituteID uint, query string, page, limit int) ([]models.Society, int64, error) {
	tx := r.db.Model(&models.Society{})
	if instituteID > 0 {
		tx = tx.Where("institute_id = ?", instituteID)
	}
	if query != "" {
		tx = tx.Where("name ILIKE ? OR category ILIKE ?", "%"+query+"%", "%"+query+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var societies []models.Society
	err := tx.Order("followers_count desc, name asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&societies).Error
	return societies, total, err
}

func (r *PostgresSocietyRepository) IncrementFollowersCount(id uint) error {
	return r.db.Model(&models.Society{}).Where("id = ?", id).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

func (r *PostgresSocietyRepository) DecrementFollowersCount(id uint) error {
	return r.db.Model(&models.Society{}).Where("id = ? AND followers_count > 0", id).
		UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
}

func (r *PostgresSocietyRepository) CountSocieties() (int64, error) {
	var count int64
	err := r.db.Model(&models.Society{}).Count(&count).Error
	return count, err
}

func (r *PostgresSocietyRepository) TopSocietiesByFollowers(limit int) ([]models.Society, error) {
	var societies []models.Society
	err := r.db.Order("followers_count desc").Limit(limit).Find(&societies).Error
	return societies, err
}
