package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/internal/gateway"
	"github.com/ChienNQuang/nextuni-portal-api/internal/models"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/config"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

type authGateway interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
}

type sessionStore interface {
	Save(ctx context.Context, sessionID, token string) error
	Token(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthService exchanges gateway credentials for portal sessions. The upstream
// gateway token is held server-side in redis, keyed by a session id that
// travels inside the portal's own JWT.
type AuthService struct {
	gw        authGateway
	sessions  sessionStore
	cfg       config.JWTConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs the service.
func NewAuthService(gw authGateway, sessions sessionStore, cfg config.JWTConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{gw: gw, sessions: sessions, cfg: cfg, validator: validate, logger: logger, now: time.Now}
}

// Login authenticates against the gateway, stores the upstream token and
// issues a portal access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and password are required")
	}

	result, err := s.gw.Login(ctx, req.Email, req.Password)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrUnauthorized.Code {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, result.Token); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.cfg.Expiration)
	claims := models.JWTClaims{
		UserID:       result.User.ID,
		SessionID:    sessionID,
		Role:         result.User.Role,
		Email:        result.User.Email,
		UniversityID: result.User.UniversityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   result.User.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	s.logger.Info("user logged in",
		zap.String("user_id", result.User.ID),
		zap.String("role", string(result.User.Role)),
	)

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.Expiration.Seconds()),
		User:        result.User,
		IssuedAt:    issuedAt,
	}, nil
}

// ValidateToken parses and validates a portal access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

// SessionFor resolves the gateway session behind a set of portal claims. A
// missing redis entry means the session has expired server-side even if the
// JWT is still within its lifetime.
func (s *AuthService) SessionFor(ctx context.Context, claims *models.JWTClaims) (gateway.Session, error) {
	if claims == nil || claims.SessionID == "" {
		return gateway.Session{}, appErrors.ErrUnauthorized
	}
	token, err := s.sessions.Token(ctx, claims.SessionID)
	if err != nil {
		return gateway.Session{}, err
	}
	return gateway.Session{Token: token}, nil
}

// Logout drops the server-side session. The portal JWT becomes useless once
// its session id no longer resolves.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil || claims.SessionID == "" {
		return appErrors.ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}
