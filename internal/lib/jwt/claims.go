package jwt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimEmail имя claim с email пользователя.
const ClaimEmail = "email"

// ErrMissingEmail возвращается, если claims не содержат непустой email.
var ErrMissingEmail = errors.New("claims must contain email")

// Claims данные, извлеченные из проверенного токена.
type Claims struct {
	Email  string         // Email пользователя
	Fields jwt.MapClaims // Все claims токена, включая iat и exp
}

// GenerateToken подписывает claims клиента, добавляя iat и exp.
// Клиентские iat/exp перезаписываются.
func (j *MakerImpl) GenerateToken(claims map[string]any) (string, error) {
	const op = "jwt.GenerateToken"

	email, _ := claims[ClaimEmail].(string)
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}

	now := j.now()
	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(j.tokenTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит токен, проверяет алгоритм, подпись и срок действия,
// возвращает Claims, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"

	mc := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, mc, func(_ *jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}

	email, _ := mc[ClaimEmail].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}
	return &Claims{
		Email:  email,
		Fields: mc,
	}, nil
}
