package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmeshcher/markethub-system/internal/model"
	"github.com/mmeshcher/markethub-system/internal/repository"
)

const verificationTokenTTL = time.Hour

// SignUp регистрирует нового пользователя и отправляет письмо со ссылкой
// подтверждения. Аккаунт создаётся неподтверждённым.
func (s *Service) SignUp(ctx context.Context, name, email, password string, role model.Role, details map[string]string) (*model.User, error) {
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Role:           role,
		IsVerified:     false,
		Status:         model.AccountStatusPending,
		ProfileDetails: details,
	}

	u.ID, err = s.repo.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, u.ID, "User Signup", fmt.Sprintf("New user registered: %s (Role: %s)", email, role))

	s.sendVerificationMail(ctx, email)

	return u, nil
}

// sendVerificationMail отправляет письмо со ссылкой подтверждения.
// Сбой отправки регистрацию не отменяет.
func (s *Service) sendVerificationMail(ctx context.Context, email string) {
	if s.mailer == nil {
		return
	}

	token, err := s.newVerificationToken(email)
	if err != nil {
		s.logger.Error("verification token error", zap.Error(err))
		return
	}

	base := s.publicAddress
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", base, token)

	if err := s.mailer.SendVerificationMail(ctx, email, link); err != nil {
		s.logger.Error("send verification mail error", zap.Error(err))
	}
}

type verificationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Service) newVerificationToken(email string) (string, error) {
	claims := verificationClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(verificationTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.tokenSecret)
}

// VerifyEmail подтверждает email по токену из письма.
func (s *Service) VerifyEmail(ctx context.Context, tokenString string) error {
	claims := &verificationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.tokenSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	u, err := s.repo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}

	if u.IsVerified {
		return ErrAlreadyVerified
	}

	if err := s.repo.SetUserVerified(ctx, u.ID); err != nil {
		return err
	}

	s.audit(ctx, u.ID, "Email Verified", fmt.Sprintf("User %s verified their email.", u.Email))

	return nil
}

// Login проверяет учётные данные и возвращает пользователя.
// Вход разрешён только после подтверждения email.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsVerified {
		return nil, ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.audit(ctx, u.ID, "User Login", fmt.Sprintf("User %s logged in.", email))

	return u, nil
}

// GetProfile возвращает профиль пользователя.
func (s *Service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// UpdateProfile обновляет имя и детали профиля пользователя.
func (s *Service) UpdateProfile(ctx context.Context, userID, name string, details map[string]string) (*model.User, error) {
	if err := s.repo.UpdateProfile(ctx, userID, name, details); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, userID, "Profile Update", fmt.Sprintf("User %s updated their profile.", u.Email))

	return u, nil
}
