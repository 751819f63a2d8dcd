package repositories

import (
	"github.com/campuslink-app/backend/internal/models"
	"gorm.io/gorm"
)

// ReportRepository defines the interface for moderation report operations
type ReportRepository interface {
	CreateReport(report *models.Report) error
	GetReportByID(id uint) (*models.Report, error)
	ListReports(status string, page, limit int) ([]models.Report, int64, error)
	UpdateReport(report *models.Report) error
	CountByStatus(status string) (int64, error)
}

type postgresReportRepository struct {
	db *gorm.DB
}

func NewPostgresReportRepository(db *gorm.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *postgresReportRepository) GetReportByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *postgresReportRepository) ListReports(status string, page, limit int) ([]models.Report, int64, error) {
	tx := r.db.Model(&models.Report{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := tx.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

func (r *postgresReportRepository) UpdateReport(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *postgresReportRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
