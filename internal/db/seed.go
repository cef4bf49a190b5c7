package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/feb_ecommerce/internal/hash"
	"github.com/Skotchmaster/feb_ecommerce/internal/models"
)

type seedUser struct {
	name     string
	email    string
	password string
	isAdmin  bool
}

var seedUsers = []seedUser{
	{name: "admin", email: "admin@admin.com", password: "admin123", isAdmin: true},
	{name: "user1", email: "user1@mail.com", password: "user123"},
}

// Seed inserts the demo admin, a regular user and one product owned by
// each of them, all in one transaction.
func Seed(ctx context.Context, db *gorm.DB) error {
	users := make([]models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		pw, err := hash.HashPassword(su.password)
		if err != nil {
			return err
		}
		users = append(users, models.User{
			Name:         ptr(su.name),
			Email:        su.email,
			PasswordHash: pw,
			IsAdmin:      su.isAdmin,
		})
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		products := []models.Product{
			{
				Name:        "Product 1",
				Description: ptr("Product 1 desc"),
				Price:       ptr(4.75),
				Stock:       ptr(20),
				UserID:      users[0].ID,
			},
			{
				Name:   "Product 2",
				Price:  ptr(159.99),
				Stock:  ptr(150),
				UserID: users[1].ID,
			},
		}
		if err := tx.Omit(clause.Associations).Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		return nil
	})
}

func ptr[T any](v T) *T { return &v }
