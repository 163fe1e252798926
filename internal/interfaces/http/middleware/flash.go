package middleware

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/chacha20poly1305"
)

// Flash kinds understood by the layout
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// FlashCookieName carries one message across a redirect
const FlashCookieName = "onlytop_flash"

const (
	flashKey       = "flash"
	flashSecureKey = "flash_secure"
	flashSealerKey = "flash_sealer"
	flashMaxAge    = 60
)

// FlashMessage is a one-shot notice shown after a redirect
type FlashMessage struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
}

// flashSealer encrypts flash cookies so a forged cookie cannot put arbitrary
// text in a toast. The cookie name is bound as additional data.
type flashSealer struct {
	aead cipher.AEAD
}

func newFlashSealer(key []byte) (*flashSealer, error) {
	if key == nil {
		key = make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &flashSealer{aead: aead}, nil
}

func (s *flashSealer) seal(msg FlashMessage) (string, error) {
	plain, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plain)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := s.aead.Seal(nonce, nonce, plain, []byte(FlashCookieName))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *flashSealer) open(raw string) (FlashMessage, error) {
	var msg FlashMessage
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return msg, err
	}
	if len(data) < s.aead.NonceSize() {
		return msg, errors.New("flash cookie too short")
	}
	nonce, box := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, box, []byte(FlashCookieName))
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(plain, &msg); err != nil {
		return msg, err
	}
	if msg.Message == "" {
		return msg, errors.New("empty flash message")
	}
	switch msg.Kind {
	case FlashSuccess, FlashError, FlashInfo:
	default:
		msg.Kind = FlashInfo
	}
	return msg, nil
}

// Flash moves a pending flash cookie into the request and expires it, so a
// message is shown exactly once. key must be 32 bytes and shared by every
// replica; nil uses a random per-process key, fine for a single instance.
func Flash(secure bool, key []byte) gin.HandlerFunc {
	sealer, err := newFlashSealer(key)
	if err != nil {
		panic("flash: " + err.Error())
	}
	return func(c *gin.Context) {
		c.Set(flashSecureKey, secure)
		c.Set(flashSealerKey, sealer)
		if raw, err := c.Cookie(FlashCookieName); err == nil && raw != "" {
			if msg, err := sealer.open(raw); err == nil {
				c.Set(flashKey, msg)
			}
			http.SetCookie(c.Writer, flashCookie("", -1, secure))
		}
		c.Next()
	}
}

// SetFlash queues a message for the next page the browser loads. It is a
// no-op outside the Flash middleware.
func SetFlash(c *gin.Context, kind, message string) {
	v, ok := c.Get(flashSealerKey)
	if !ok {
		return
	}
	value, err := v.(*flashSealer).seal(FlashMessage{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, flashCookie(value, flashMaxAge, c.GetBool(flashSecureKey)))
}

// GetFlash returns the message delivered with this request, if any
func GetFlash(c *gin.Context) *FlashMessage {
	if v, ok := c.Get(flashKey); ok {
		if msg, ok := v.(FlashMessage); ok {
			return &msg
		}
	}
	return nil
}

func flashCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
