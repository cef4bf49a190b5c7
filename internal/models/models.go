package models

type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name         *string `gorm:"size:100"                    json:"name"`
	Email        string  `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"column:password;size:100;not null" json:"-"`
	IsAdmin      bool    `gorm:"not null;default:false"      json:"is_admin"`
}

// Product keeps only the owner id as the source of truth. Owner is loaded
// on demand for shaping; the reverse direction is a query by user_id.
type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `gorm:"size:100;not null"        json:"name"`
	Description *string  `gorm:"size:100"                 json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	UserID      uint     `gorm:"not null;index"           json:"user_id"`
	Owner       User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
