package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/coad-fablab/printlab-api/internal/dto"
	"github.com/coad-fablab/printlab-api/internal/models"
	"github.com/coad-fablab/printlab-api/pkg/config"
	appErrors "github.com/coad-fablab/printlab-api/pkg/errors"
)

type workstationRepository interface {
	FindByID(ctx context.Context, id string) (*models.Workstation, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// AuthService issues and validates workstation access tokens.
type AuthService struct {
	repo      workstationRepository
	cfg       config.JWTConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(repo workstationRepository, cfg config.JWTConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, cfg: cfg, validator: validate, logger: logger, now: time.Now}
}

// Login verifies workstation credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	ws, err := s.repo.FindByID(ctx, req.WorkstationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load workstation")
	}
	if !ws.Active {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "workstation is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ws.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed workstation login", zap.String("workstation_id", req.WorkstationID))
		return nil, appErrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.Expiration)
	claims := models.WorkstationClaims{
		WorkstationID: ws.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ws.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	if err := s.repo.UpdateLastLogin(ctx, ws.ID); err != nil {
		s.logger.Warn("failed to stamp workstation login", zap.String("workstation_id", ws.ID), zap.Error(err))
	}

	return &dto.LoginResponse{Token: signed, WorkstationID: ws.ID, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*models.WorkstationClaims, error) {
	claims := &models.WorkstationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
