package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the HS256 access tokens the API runs on.
// Token issuance normally happens in the identity service that shares
// the secret; GenerateAccessToken exists for service accounts and
// operational tooling.
type Service struct {
	secretKey          string
	accessTokenExpires string
	tokenAuth          *jwtauth.JWTAuth
}

func NewService(secretKey string, accessTokenExpires string) *Service {
	return &Service{
		secretKey:          secretKey,
		accessTokenExpires: accessTokenExpires,
		tokenAuth:          jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (s *Service) JWTAuth() *jwtauth.JWTAuth {
	return s.tokenAuth
}

func (s *Service) GenerateAccessToken(userID string, companyID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(s.accessTokenExpires)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}
