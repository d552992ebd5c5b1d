package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inneratlas/inneratlas-backend/internal/logger"
	"github.com/inneratlas/inneratlas-backend/internal/normalization"
	"github.com/inneratlas/inneratlas-backend/internal/repos"
	"github.com/inneratlas/inneratlas-backend/internal/requestdata"
	"github.com/inneratlas/inneratlas-backend/internal/types"
	"github.com/inneratlas/inneratlas-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, username, email, password string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString, refreshToken string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	systemRepo    repos.SystemRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	systemRepo repos.SystemRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		systemRepo:    systemRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// RegisterUser creates the user and their system in one transaction;
// every user owns exactly one system.
func (as *authService) RegisterUser(ctx context.Context, username, email, password string) (*types.User, error) {
	user := &types.User{
		Username: username,
		Email:    email,
	}
	utils.NormalizeUserFields(user)
	if vErr := utils.ValidateRegistration(user, password); vErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, vErr)
	}

	if exists, err := as.userRepo.EmailExists(ctx, nil, user.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}
	if exists, err := as.userRepo.UsernameExists(ctx, nil, user.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if exists {
		return nil, fmt.Errorf("%w: username already taken", ErrInvalidInput)
	}

	hash, hErr := utils.HashPassword(password)
	if hErr != nil {
		return nil, fmt.Errorf("failed to hash password: %w", hErr)
	}
	user.PasswordHash = hash

	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
			return fmt.Errorf("failed to create user: %w", ucErr)
		}
		system := &types.System{ID: uuid.New(), UserID: user.ID}
		if _, scErr := as.systemRepo.Create(ctx, tx, []*types.System{system}); scErr != nil {
			return fmt.Errorf("failed to create system: %w", scErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = normalization.ParseInputString(email)

	users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if usErr != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("%w: invalid email or password", ErrInvalidInput)
	}
	user := users[0]
	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", "", fmt.Errorf("%w: invalid email or password", ErrInvalidInput)
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := as.userTokenRepo.DeleteExpired(ctx, tx, time.Now()); dErr != nil {
			as.log.Warn("failed to purge expired tokens", "error", dErr)
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			TokenHash: hashToken(refreshToken),
			ExpiresAt: time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
			return fmt.Errorf("create user token error: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RefreshUser rotates the refresh token: the presented token is
// invalidated and a fresh pair is issued.
func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: refresh token missing", ErrInvalidInput)
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByTokenHashes(ctx, tx, []string{hashToken(rd.RefreshToken)})
		if ftErr != nil {
			return fmt.Errorf("error fetching refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return fmt.Errorf("%w: unknown refresh token", ErrInvalidInput)
		}
		existing := foundTokens[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if dErr := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{existing.UserID}); dErr != nil {
				as.log.Warn("failed to delete expired refresh token", "error", dErr)
			}
			return fmt.Errorf("%w: refresh token expired", ErrInvalidInput)
		}
		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if uErr != nil {
			return fmt.Errorf("failed to load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return fmt.Errorf("%w: no user for refresh token", ErrNotFound)
		}
		user := users[0]
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("failed to generate new access token: %w", genErr)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		newUserToken := types.UserToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			TokenHash: hashToken(newRefreshToken),
			ExpiresAt: time.Now().Add(as.refreshTTL),
		}
		if dErr := as.userTokenRepo.DeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); dErr != nil {
			return fmt.Errorf("failed to remove old refresh token: %w", dErr)
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
			return fmt.Errorf("failed to create new user token: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("%w: no authenticated user in context", ErrInvalidInput)
	}
	return as.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString, refreshToken string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
