// Package mockapi реализует локальный REST API витрины для разработки и
// тестов клиента: набор данных в памяти, подписанные токены и все маршруты,
// которые потребляет клиент.
package mockapi

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const refreshMarker = "refresh"

// tokenIssuer выпускает и проверяет подписанные HMAC токены доступа.
// Формат токена: <userID>.<expiresUnix>.<signature>.
type tokenIssuer struct {
	secretKey []byte
	accessTTL time.Duration
	now       func() time.Time
}

func newTokenIssuer(secret string, accessTTL time.Duration) *tokenIssuer {
	key := []byte(secret)
	if len(key) == 0 {
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err == nil {
			key = randomKey
		} else {
			key = []byte("mockapi-secret-key")
		}
	}

	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}

	return &tokenIssuer{
		secretKey: key,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// AccessToken выпускает токен доступа для указанного пользователя.
func (t *tokenIssuer) AccessToken(userID string) string {
	expires := t.now().Add(t.accessTTL).Unix()
	return t.sign(userID, strconv.FormatInt(expires, 10))
}

// RefreshToken выпускает долгоживущий refresh-токен.
func (t *tokenIssuer) RefreshToken(userID string) string {
	expires := t.now().Add(365 * 24 * time.Hour).Unix()
	return t.sign(userID, strconv.FormatInt(expires, 10), refreshMarker)
}

func (t *tokenIssuer) sign(parts ...string) string {
	payload := strings.Join(parts, ".")
	mac := hmac.New(sha256.New, t.secretKey)
	mac.Write([]byte(payload))
	return payload + "." + hex.EncodeToString(mac.Sum(nil))
}

// Parse проверяет подпись и срок действия токена и возвращает идентификатор
// пользователя. Второй результат сообщает, истёк ли срок действия.
func (t *tokenIssuer) Parse(token string, wantRefresh bool) (userID string, expired, ok bool) {
	parts := strings.Split(token, ".")

	wantParts := 3
	if wantRefresh {
		wantParts = 4
	}
	if len(parts) != wantParts {
		return "", false, false
	}
	if wantRefresh && parts[2] != refreshMarker {
		return "", false, false
	}

	payload := strings.Join(parts[:wantParts-1], ".")
	mac := hmac.New(sha256.New, t.secretKey)
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(parts[wantParts-1]), []byte(expected)) {
		return "", false, false
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", false, false
	}

	if t.now().Unix() >= expires {
		return parts[0], true, true
	}

	return parts[0], false, true
}
