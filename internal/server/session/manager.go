package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/mdouchement/cmsadmin/internal/apierror"
	"github.com/mdouchement/cmsadmin/internal/database"
	"github.com/mdouchement/cmsadmin/internal/model"
	"github.com/pkg/errors"
)

// Issuer is the issuer of the generated tokens.
const Issuer = "cmsserver"

type (
	// A Manager manages the bearer tokens of the administrators.
	Manager interface {
		// SigningKey returns the key used to sign the tokens.
		SigningKey() []byte
		// Generate creates a new token for the given user.
		Generate(user *model.User) (string, error)
		// UserFromToken returns the user of the given parsed token.
		UserFromToken(token *jwt.Token) (*model.User, error)
	}

	manager struct {
		db         database.Client
		signingKey []byte
		ttl        time.Duration
	}
)

// NewManager returns a new manager.
// A zero ttl means that the tokens never expire.
func NewManager(db database.Client, signingKey []byte, ttl time.Duration) Manager {
	return &manager{
		db:         db,
		signingKey: signingKey,
		ttl:        ttl,
	}
}

func (m *manager) SigningKey() []byte {
	return m.signingKey
}

func (m *manager) Generate(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_uuid": user.ID,
		"iss":       Issuer,
		"iat":       now.Unix(), // Unix Timestamp in seconds
		"jti":       SecureToken(24),
	}
	if m.ttl > 0 {
		claims["exp"] = now.Add(m.ttl).Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	return token, errors.Wrap(err, "could not generate token")
}

func (m *manager) UserFromToken(token *jwt.Token) (*model.User, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		panic("token implementation has wrong type of claims")
	}

	id, _ := claims["user_uuid"].(string)
	if id == "" {
		return nil, apierror.Unauthorized("Invalid token.")
	}

	// Get current_user.
	user, err := m.db.FindUser(id)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, apierror.Unauthorized("No such user for given token.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	return user, nil
}
