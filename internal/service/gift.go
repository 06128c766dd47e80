package service

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
)

type GiftService interface {
	Wrap(claims map[string]any) (string, error)
	Unwrap(token string) (map[string]any, error)
	Decode(token string) (map[string]any, error)
}

type giftService struct {
	secretKey []byte
	santaKey  *rsa.PublicKey
}

func NewGiftService(secretKey string, santaKeyPEM []byte) (GiftService, error) {
	santaKey, err := jwt.ParseRSAPublicKeyFromPEM(santaKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse santa public key: %w", err)
	}

	return &giftService{
		secretKey: []byte(secretKey),
		santaKey:  santaKey,
	}, nil
}

// Wrap signs arbitrary gift contents into an HS256 token.
func (that *giftService) Wrap(claims map[string]any) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims))

	tokenString, err := token.SignedString(that.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Unwrap verifies a token produced by Wrap and returns its contents.
func (that *giftService) Unwrap(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return that.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrGiftMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.ErrGiftMalformed
	}

	return claims, nil
}

// Decode verifies a token against Santa's RSA public key, accepting whatever
// RSA variant the token header declares. A well-formed token with a bad
// signature is reported distinctly from a malformed one.
func (that *giftService) Decode(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return that.santaKey, nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
			return nil, apperror.ErrGiftTampered
		}
		return nil, apperror.ErrGiftMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrGiftMalformed
	}

	return claims, nil
}
