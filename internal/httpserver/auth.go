// internal/httpserver/auth.go
//
// Host-panel authentication. The control routes (start, pause, dict
// import, leaderboard reset) are for the show operator only; a single
// password (HOST_PASSWORD env, plaintext compared via bcrypt hash
// computed at startup) yields a short-lived HS256 token, accepted as a
// cookie or bearer header. Participants are never authenticated.

package httpserver

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	hostCookieName  = "katakilat_host"
	hostTokenExpiry = 12 * time.Hour
)

type hostAuth struct {
	passwordHash []byte
	secret       []byte
}

// newHostAuth hashes HOST_PASSWORD once at startup. With no password
// configured the control routes stay open (local single-host setup).
func newHostAuth() *hostAuth {
	a := &hostAuth{secret: []byte(os.Getenv("JWT_SECRET"))}
	if pw := os.Getenv("HOST_PASSWORD"); pw != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err == nil {
			a.passwordHash = h
		}
	}
	return a
}

func (a *hostAuth) enabled() bool {
	return len(a.passwordHash) > 0
}

func (a *hostAuth) checkPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(pw)) == nil
}

func (a *hostAuth) signToken() (string, time.Time, error) {
	exp := time.Now().Add(hostTokenExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "host",
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	})
	ss, err := token.SignedString(a.secret)
	return ss, exp, err
}

func (a *hostAuth) validToken(tokenStr string) bool {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	role, _ := claims["role"].(string)
	return role == "host"
}

func setHostCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     hostCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from Authorization: Bearer or the
// host cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(hostCookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireHost gates the mutating control routes.
func (a *hostAuth) requireHost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled() {
			next.ServeHTTP(w, r)
			return
		}
		if !a.validToken(bearerOrCookie(r)) {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
