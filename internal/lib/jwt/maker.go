// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Токен содержит произвольные claims клиента, обязательное поле email
// и стандартные iat/exp. Срок жизни задается при создании Maker.
package jwt

import (
	"time"
)

// DefaultTTL срок жизни токена по умолчанию — одни сутки.
const DefaultTTL = 24 * time.Hour

// Maker описывает интерфейс для выпуска и разбора токенов.
type Maker interface {
	// GenerateToken подписывает переданные claims, claims должны содержать email.
	GenerateToken(claims map[string]any) (string, error)
	// ParseToken проверяет подпись и срок действия токена и возвращает его claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа HS256
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
// Нулевой ttl заменяется DefaultTTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
