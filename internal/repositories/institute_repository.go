package repositories

import (
	"github.com/campuslink-app/backend/internal/models"
	"gorm.io/gorm"
)

// InstituteRepository defines the interface for institute data operations
type InstituteRepository interface {
	CreateInstitute(institute *models.Institute) error
	GetInstituteByID(id uint) (*models.Institute, error)
	GetInstituteByDomain(domain string) (*models.Institute, error)
	ListInstitutes() ([]models.Institute, error)
}

// PostgresInstituteRepository implements InstituteRepository for PostgreSQL
type PostgresInstituteRepository struct {
	db *gorm.DB
}

// NewPostgresInstituteRepository creates a new PostgresInstituteRepository
func NewPostgresInstituteRepository(db *gorm.DB) *PostgresInstituteRepository {
	return &PostgresInstituteRepository{db: db}
}

func (r *PostgresInstituteRepository) CreateInstitute(institute *models.Institute) error {
	return r.db.Create(institute).Error
}

func (r *PostgresInstituteRepository) GetInstituteByID(id uint) (*models.Institute, error) {
	var institute models.Institute
	if err := r.db.First(&institute, id).Error; err != nil {
		return nil, err
	}
	return &institute, nil
}

func (r *PostgresInstituteRepository) GetInstituteByDomain(domain string) (*models.Institute, error) {
	var institute models.Institute
	if err := r.db.Where("domain = ?", domain).First(&institute).Error; err != nil {
		return nil, err
	}
	return &institute, nil
}

func (r *PostgresInstituteRepository) ListInstitutes() ([]models.Institute, error) {
	var institutes []models.Institute
	err := r.db.Order("name asc").Find(&institutes).Error
	return institutes, err
}
