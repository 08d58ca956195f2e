package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/infrastructure/config"
	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/ports"
)

// Claims represents the JWT claims. Role and organization ride in the token
// so downstream checks need no database round trip.
type Claims struct {
	UserID         string        `json:"user_id"`
	Email          string        `json:"email"`
	Role           entities.Role `json:"role"`
	OrganizationID int64         `json:"organization_id"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	userRepo  ports.UserRepository
	orgRepo   ports.OrganizationRepository
	jwtConfig config.JWTConfig
	logger    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, orgRepo ports.OrganizationRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

// Register creates a new user account and returns a bearer token. When no
// organization is given, a fresh one named after the email's local part is
// created and the user becomes its first member.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, entities.ErrEmailTaken
	}

	var orgID int64
	if req.OrganizationID != nil {
		org, err := s.orgRepo.GetByID(ctx, *req.OrganizationID)
		if err != nil {
			return nil, err
		}
		orgID = org.ID
	} else {
		localPart := req.Email
		if at := strings.Index(req.Email, "@"); at >= 0 {
			localPart = req.Email[:at]
		}
		org := &entities.Organization{
			Name: fmt.Sprintf("%s's Organization", localPart),
		}
		if err := s.orgRepo.Create(ctx, org); err != nil {
			return nil, fmt.Errorf("failed to create organization: %w", err)
		}
		orgID = org.ID
	}

	// Hash exactly once, before the record becomes durable. Plaintext is
	// never stored.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:             uuid.New(),
		Email:          req.Email,
		PasswordHash:   string(hashedPassword),
		Role:           entities.ParseRole(req.Role),
		OrganizationID: orgID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("User registered",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role,
		"organization_id", user.OrganizationID,
	)

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{AccessToken: accessToken}, nil
}

// Login authenticates a user and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warnw("Login attempt with unknown email", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.LogSecurityEvent("invalid_password", user.ID.String(), "", map[string]interface{}{
			"email": req.Email,
		})
		return nil, entities.ErrInvalidCredentials
	}

	s.logger.Infow("User logged in", "user_id", user.ID, "email", user.Email)

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{AccessToken: accessToken}, nil
}

// ValidateToken verifies signature and expiry and resolves the token to a
// request principal.
func (s *AuthService) ValidateToken(tokenString string) (*entities.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in token: %w", err)
	}

	return &entities.Principal{
		UserID:         userID,
		Email:          claims.Email,
		Role:           claims.Role,
		OrganizationID: claims.OrganizationID,
	}, nil
}

func (s *AuthService) generateAccessToken(user *entities.User) (string, error) {
	claims := &Claims{
		UserID:         user.ID.String(),
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
