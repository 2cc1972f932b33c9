package jwt

import (
	"time"

	"github.com/SandeDesign/alloon-sub000/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens issued by the HRIS auth service. Tokens carry
// user_id, company_id, role and type claims.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(userID string, companyID string, role user.Role) (token string, expiresAt int64, err error)
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken issues a token with the same claim layout as the auth service.
// Used by tooling and tests.
func (j *JWTService) GenerateAccessToken(userID string, companyID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"role":       string(role),
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}
