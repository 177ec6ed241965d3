package v1

import (
	"crypto/sha256"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"

	logicv1 "github.com/ndhoang/authgate/internal/logic/v1"
)

// SessionCookieName is the cookie carrying the encoded session identifier.
const SessionCookieName = "authgate_session"

// CookieCodec signs and encrypts the session identifier before it leaves the
// server. The browser only ever sees an opaque blob; the authoritative
// session record stays in the store.
type CookieCodec struct {
	sc *securecookie.SecureCookie
}

// NewCookieCodec derives the securecookie keys from the two session secrets:
// the signing secret authenticates the cookie, the store secret encrypts it.
func NewCookieCodec(signingSecret, storeSecret string) *CookieCodec {
	hashKey := sha256.Sum256([]byte(signingSecret))
	blockKey := sha256.Sum256([]byte(storeSecret))
	return &CookieCodec{
		sc: securecookie.New(hashKey[:], blockKey[:]),
	}
}

// Write sets the session cookie on the response.
func (cc *CookieCodec) Write(c *gin.Context, sessionID string) error {
	encoded, err := cc.sc.Encode(SessionCookieName, sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(logicv1.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the session identifier from the request cookie, or "" when
// the cookie is absent, tampered with, or otherwise undecodable — all of
// which just mean the visitor is anonymous.
func (cc *CookieCodec) Read(c *gin.Context) string {
	cookie, err := c.Request.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	var sessionID string
	if err := cc.sc.Decode(SessionCookieName, cookie.Value, &sessionID); err != nil {
		return ""
	}
	return sessionID
}

// Clear expires the session cookie on the response.
func (cc *CookieCodec) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
