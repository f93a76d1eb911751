package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"worktrack/internal/models"
)

type ProfileStore struct{ db *gorm.DB }

func NewProfileStore(db *gorm.DB) *ProfileStore { return &ProfileStore{db: db} }

func (s *ProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	var rows []models.Profile
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return rows, nil
}

// ByUserIDs: пакетная выборка профилей для склейки в памяти.
func (s *ProfileStore) ByUserIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Profile
	if err := s.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("profiles by user ids: %w", err)
	}
	return rows, nil
}

func (s *ProfileStore) ByUserID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// RolesFor: строки ролей по пользователям, в порядке вставки.
func (s *ProfileStore) RolesFor(ctx context.Context, ids []uuid.UUID) ([]models.UserRole, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.UserRole
	if err := s.db.WithContext(ctx).Where("user_id IN ?", ids).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("roles for users: %w", err)
	}
	return rows, nil
}

// FirstRole: первая строка роли пользователя; без строк — "user".
func (s *ProfileStore) FirstRole(ctx context.Context, id uuid.UUID) (string, error) {
	var r models.UserRole
	err := s.db.WithContext(ctx).Where("user_id = ?", id).Order("id asc").First(&r).Error
	if err != nil {
		if notFound(err) == ErrNotFound {
			return models.RoleUser, nil
		}
		return "", err
	}
	return r.Role, nil
}

func (s *ProfileStore) AddRole(ctx context.Context, id uuid.UUID, role string) error {
	return s.db.WithContext(ctx).Create(&models.UserRole{UserID: id, Role: role}).Error
}

// UserStore: учётные данные (email + bcrypt-хэш).
type UserStore struct{ db *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// Register создаёт пользователя, профиль и строку роли одной транзакцией
// и возвращает назначенную роль. Admin получает только первый пользователь:
// из одновременных регистраций AdminSeat вставит одна, остальные станут user.
func (s *UserStore) Register(ctx context.Context, u *models.User, p *models.Profile) (string, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	role := models.RoleUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		p.UserID = u.ID
		p.Email = u.Email
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.User{}).Count(&n).Error; err != nil {
			return err
		}
		if n == 1 {
			first, err := claimAdminSeat(tx, u.ID)
			if err != nil {
				return err
			}
			if first {
				role = models.RoleAdmin
			}
		}
		return tx.Create(&models.UserRole{UserID: u.ID, Role: role}).Error
	})
	if err != nil {
		return "", err
	}
	return role, nil
}

// claimAdminSeat вставляет AdminSeat в savepoint; занятое место даёт false.
func claimAdminSeat(tx *gorm.DB, userID uuid.UUID) (bool, error) {
	err := tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(&models.AdminSeat{ID: 1, UserID: userID}).Error
	})
	if err == nil {
		return true, nil
	}
	var seat models.AdminSeat
	if ferr := tx.First(&seat, 1).Error; ferr != nil && !errors.Is(ferr, gorm.ErrRecordNotFound) {
		return false, ferr
	}
	return false, nil
}
