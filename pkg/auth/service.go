package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/bibliocat/bibliocat/pkg/errcodes"
	"github.com/bibliocat/bibliocat/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12
	// AuthTokenBytes is the number of random bytes in a capability token.
	AuthTokenBytes = 16
	// SessionExpiry is how long admin console JWTs are valid.
	SessionExpiry = 7 * 24 * time.Hour
)

// JWTClaims represents the claims in an admin console session token.
type JWTClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service handles authentication operations.
type Service struct {
	db        *bun.DB
	jwtSecret []byte
}

func NewService(db *bun.DB, jwtSecret string) *Service {
	return &Service{
		db:        db,
		jwtSecret: []byte(jwtSecret),
	}
}

// Authenticate validates credentials and returns the user if valid.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Relation("Roles").
		Relation("Site").
		Relation("Group").
		Where("u.username = ? COLLATE NOCASE", username).
		Where("u.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	return user, nil
}

// IssueAuthToken generates a fresh opaque capability token and stores it on
// the user row, overwriting any previous one. There is no expiry and no
// revocation other than overwrite; this mirrors the legacy API contract.
func (s *Service) IssueAuthToken(ctx context.Context, user *models.User) (string, error) {
	buf := make([]byte, AuthTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.WithStack(err)
	}
	token := hex.EncodeToString(buf)

	user.AuthToken = &token
	_, err := s.db.NewUpdate().
		Model(user).
		Column("auth_token", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return token, nil
}

// RetrieveByToken looks up the user holding the given capability token. Any
// request presenting a matching token is authenticated as that user.
func (s *Service) RetrieveByToken(ctx context.Context, token string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Relation("Roles").
		Relation("Site").
		Relation("Group").
		Where("u.auth_token = ?", token).
		Where("u.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.Unauthorized("Invalid token")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// SessionToken derives the legacy login token: sha256 of the first role name
// and sha256 of the phone number, hex encoded and joined with an underscore.
// It is deterministic, carries no server-side state, cannot be invalidated,
// and collides for users sharing role and phone. Kept for API compatibility
// only; new clients should use the console session instead.
func SessionToken(user *models.User) *string {
	roles := user.RoleNames()
	if len(roles) == 0 || user.Telefon == nil || *user.Telefon == "" {
		return nil
	}

	roleSum := sha256.Sum256([]byte(roles[0]))
	phoneSum := sha256.Sum256([]byte(*user.Telefon))
	token := hex.EncodeToString(roleSum[:]) + "_" + hex.EncodeToString(phoneSum[:])
	return &token
}

// GenerateSessionJWT creates a signed console session token for the user.
func (s *Service) GenerateSessionJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// ValidateSessionJWT validates a console session token and returns the claims.
func (s *Service) ValidateSessionJWT(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// RetrieveByID retrieves an active user by ID with relations.
func (s *Service) RetrieveByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Relation("Roles").
		Relation("Site").
		Relation("Group").
		Where("u.id = ?", id).
		Where("u.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Usuari")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
