// Package auth: вход, регистрация и выход. Пароли — bcrypt, сессия
// передаётся браузеру как подписанный JWT (HS256) в cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"worktrack/internal/models"
	"worktrack/internal/repo"
	"worktrack/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid session token")
)

type Users interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, u *models.User, p *models.Profile) (string, error)
}

type Profiles interface {
	ByUserID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FirstRole(ctx context.Context, id uuid.UUID) (string, error)
}

// Claims: стандартные утверждения; jti = id сессии, sub = id пользователя.
type Claims struct {
	jwt.RegisteredClaims
}

type Service struct {
	users    Users
	profiles Profiles
	sessions session.Store
	secret   []byte
	ttl      time.Duration
	log      *logrus.Entry

	now func() time.Time
}

type Options struct {
	Secret string
	TTL    time.Duration
}

func NewService(users Users, profiles Profiles, sessions session.Store, opt Options, log *logrus.Logger) *Service {
	if opt.TTL <= 0 {
		opt.TTL = 12 * time.Hour
	}
	return &Service{
		users:    users,
		profiles: profiles,
		sessions: sessions,
		secret:   []byte(opt.Secret),
		ttl:      opt.TTL,
		log:      log.WithField("module", "auth"),
		now:      time.Now,
	}
}

type SignUpInput struct {
	Email      string
	Password   string
	FullName   string
	Department string
}

// SignUp создаёт учётку, профиль и строку роли. Первый пользователь
// в пустой базе получает admin, остальные — user.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{Email: email, PasswordHash: hash}
	p := &models.Profile{FullName: strings.TrimSpace(in.FullName), Department: in.Department}
	role, err := s.users.Register(ctx, u, p)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": u.ID, "role": role}).Info("user registered")
	return nil
}

// SignIn проверяет пароль, заводит сессию и возвращает её вместе с токеном.
func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, string, error) {
	u, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	role, err := s.profiles.FirstRole(ctx, u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("load role: %w", err)
	}
	now := s.now().UTC()
	sess := &session.Session{
		ID:        uuid.New(),
		UserID:    u.ID,
		Email:     u.Email,
		Role:      session.ParseRole(role),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if p, err := s.profiles.ByUserID(ctx, u.ID); err == nil {
		sess.FullName = p.FullName
		sess.Department = p.Department
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", fmt.Errorf("load profile: %w", err)
	}

	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}
	tok, err := s.token(sess)
	if err != nil {
		return nil, "", err
	}
	return sess, tok, nil
}

// Authenticate разбирает токен и поднимает живую сессию из Store.
func (s *Service) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.UserID.String() != claims.Subject || sess.Expired(s.now()) {
		return nil, session.ErrNoSession
	}
	return sess, nil
}

// SignOut удаляет сессию; повторный выход не ошибка.
func (s *Service) SignOut(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil && !errors.Is(err, session.ErrNoSession) {
		return err
	}
	return nil
}

func (s *Service) token(sess *session.Session) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID.String(),
			Subject:   sess.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	})
	str, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return str, nil
}

// TTL: срок жизни cookie.
func (s *Service) TTL() time.Duration { return s.ttl }
