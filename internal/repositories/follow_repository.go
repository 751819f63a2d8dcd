package repositories

import (
	"fmt"

	"github.com/campuslink-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for society-follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.SocietyFollow) error
	DeleteFollow(userID, societyID uint) error
	IsFollowing(userID, societyID uint) (bool, error)
	GetFollowedSocietyIDs(userID uint) ([]uint, error)
	GetFollowerIDs(societyID uint) ([]uint, error)
	GetFollowersCount(societyID uint) (int64, error)
	CountFollows() (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.SocietyFollow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(userID, societyID uint) error {
	res := r.db.Where("user_id = ? AND society_id = ?", userID, societyID).Delete(&models.SocietyFollow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(userID, societyID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.SocietyFollow{}).Where("user_id = ? AND society_id = ?", userID, societyID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowedSocietyIDs returns every society id the user follows. This is the
// follow-set read backing feed assembly.
func (r *PostgresFollowRepository) GetFollowedSocietyIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.SocietyFollow{}).Where("user_id = ?", userID).Pluck("society_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowerIDs(societyID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.SocietyFollow{}).Where("society_id = ?", societyID).Pluck("user_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(societyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SocietyFollow{}).Where("society_id = ?", societyID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) CountFollows() (int64, error) {
	var count int64
	err := r.db.Model(&models.SocietyFollow{}).Count(&count).Error
	return count, err
}
