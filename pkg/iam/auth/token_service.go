package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

// AuthContext is the authenticated actor attached to a request. Agency staff
// carry an AgencyID, candidates a CandidateID; both are nil for plain users.
type AuthContext struct {
	UserID      kernel.UserID
	AgencyID    *kernel.AgencyID
	CandidateID *kernel.CandidateID
}

// TokenService validates and issues access tokens. The full authentication
// lifecycle (login, refresh, sessions) lives outside this service.
type TokenService interface {
	Generate(authCtx AuthContext) (string, error)
	Validate(token string) (*AuthContext, error)
}

type jwtClaims struct {
	AgencyID    string `json:"agency_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HMAC-signed JWTs.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

func (s *JWTService) Generate(authCtx AuthContext) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authCtx.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if authCtx.AgencyID != nil {
		claims.AgencyID = authCtx.AgencyID.String()
	}
	if authCtx.CandidateID != nil {
		claims.CandidateID = authCtx.CandidateID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) Validate(tokenStr string) (*AuthContext, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken().WithDetail("alg", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	authCtx := &AuthContext{UserID: kernel.NewUserID(claims.Subject)}
	if claims.AgencyID != "" {
		aid := kernel.NewAgencyID(claims.AgencyID)
		authCtx.AgencyID = &aid
	}
	if claims.CandidateID != "" {
		cid := kernel.NewCandidateID(claims.CandidateID)
		authCtx.CandidateID = &cid
	}

	return authCtx, nil
}
