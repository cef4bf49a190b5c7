package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/feb_ecommerce/internal/models"
)

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Preload("Owner").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByOwner is the reverse of Product.Owner.
func (r *GormRepo) GetProductsByOwner(ctx context.Context, userID uint) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct inserts prod and loads its owner.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(prod).Error; err != nil {
		return err
	}
	return r.loadOwner(db, prod)
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(prod).Error; err != nil {
		return err
	}
	return r.loadOwner(db, prod)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) loadOwner(db *gorm.DB, prod *models.Product) error {
	if prod.Owner.ID == prod.UserID {
		return nil
	}
	var owner models.User
	if err := db.Where("id = ?", prod.UserID).First(&owner).Error; err != nil {
		return err
	}
	prod.Owner = owner
	return nil
}
