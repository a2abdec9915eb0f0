package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// BusinessRepository 商户数据访问接口
type BusinessRepository interface {
	GetByID(id uint) (*models.Business, error)
	GetBySlug(slug string) (*models.Business, error)
}

// GormBusinessRepository GORM 实现
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository 创建商户仓库
func NewBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// GetByID 根据 ID 获取商户
func (r *GormBusinessRepository) GetByID(id uint) (*models.Business, error) {
	var business models.Business
	if err := r.db.First(&business, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

// GetBySlug 根据标识符获取商户
func (r *GormBusinessRepository) GetBySlug(slug string) (*models.Business, error) {
	var business models.Business
	if err := r.db.Where("slug = ?", slug).First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}
