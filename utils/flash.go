package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "sequia_flash"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"` // success, info, error
	Message string `json:"message"`
}

// AddFlash queues a message in a signed cookie, appending to any pending ones.
func AddFlash(c *gin.Context, secretKey, level, message string) {
	flashes := readFlashes(c, secretKey)
	flashes = append(flashes, Flash{Level: level, Message: message})

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	value := SignValue(secretKey, base64.RawURLEncoding.EncodeToString(raw))
	setCookie(c, flashCookie, value, 0)
}

// PopFlashes returns the pending messages and clears the cookie.
func PopFlashes(c *gin.Context, secretKey string) []Flash {
	flashes := readFlashes(c, secretKey)
	if _, err := c.Cookie(flashCookie); err == nil {
		setCookie(c, flashCookie, "", -1)
	}
	return flashes
}

func readFlashes(c *gin.Context, secretKey string) []Flash {
	signed, err := c.Cookie(flashCookie)
	if err != nil || signed == "" {
		return nil
	}
	encoded, ok := VerifySignedValue(secretKey, signed)
	if !ok {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
