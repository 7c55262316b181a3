package jwt

import (
	"errors"
	"fmt"
	"recipe-catalog/domain"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(email string, fullName string, userID uint) (string, time.Time, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetClaimsByToken(token string) (domain.AuthClaims, error)
	}

	// jwtUserClaim carries sub=email plus the fullName and userId claims.
	jwtUserClaim struct {
		FullName string `json:"fullName"`
		UserID   uint   `json:"userId"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		ttl       time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(email string, fullName string, userID uint) (string, time.Time, error) {
	issuedAt := j.now()
	expiresAt := issuedAt.Add(j.ttl)

	claims := jwtUserClaim{
		fullName,
		userID,
		jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	t_Token, err := parser.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
	if err != nil {
		return nil, err
	}

	// expiry is checked against the service clock rather than the wall clock
	claims := t_Token.Claims.(*jwtUserClaim)
	if !claims.VerifyExpiresAt(j.now(), true) {
		return t_Token, &jwt.ValidationError{Inner: jwt.ErrTokenExpired, Errors: jwt.ValidationErrorExpired}
	}
	return t_Token, nil
}

func (j *jwtService) GetClaimsByToken(token string) (domain.AuthClaims, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.AuthClaims{}, domain.ErrTokenExpired
		}
		return domain.AuthClaims{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.AuthClaims{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.Subject == "" {
		return domain.AuthClaims{}, domain.ErrTokenInvalid
	}

	return domain.AuthClaims{
		Email:    claims.Subject,
		FullName: claims.FullName,
		UserID:   claims.UserID,
	}, nil
}
