package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User: учётные данные провайдера аутентификации.
type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash []byte    `gorm:"not null"`
	CreatedAt    time.Time
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Profile struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:char(36);uniqueIndex;not null" json:"user_id"`
	FullName   string    `gorm:"size:255" json:"full_name"`
	Email      string    `gorm:"size:255" json:"email"`
	Department string    `gorm:"size:128" json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AdminSeat: не больше одной строки (ID=1). Кто её вставил, тот первый admin.
type AdminSeat struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false"`
	UserID    uuid.UUID `gorm:"type:char(36);not null"`
	CreatedAt time.Time
}

// UserRole: у пользователя может быть несколько строк, учитывается первая.
type UserRole struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index;not null"`
	Role      string    `gorm:"size:16;not null"`
	CreatedAt time.Time
}
