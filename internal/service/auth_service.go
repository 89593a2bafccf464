package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService against the environment-supplied admin
// credential pair. The password is held only as a bcrypt hash.
type authService struct {
	adminEmail        string
	adminPasswordHash []byte
	jwtSecret         []byte
	tokenTTL          time.Duration
	logger            zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		adminEmail:        cfg.AdminEmail,
		adminPasswordHash: []byte(cfg.AdminPasswordHash),
		jwtSecret:         []byte(cfg.JWTSecret),
		tokenTTL:          24 * time.Hour,
		logger:            logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies the credential pair and issues a signed token. All failure
// modes collapse into the same invalid-credentials error.
func (s *authService) Login(email, password string) (string, error) {
	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1

	// Always run the bcrypt comparison so a wrong email costs the same as a
	// wrong password.
	passwordErr := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password))

	if !emailMatches || passwordErr != nil {
		s.logger.Warn().Str("email", email).Msg("login rejected")
		return "", model.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
		"jti": uuid.NewString(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("login succeeded")
	return signed, nil
}
