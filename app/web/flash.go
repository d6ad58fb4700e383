package web

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

const FlashCookie = "catalog_flash"

const (
	// maxFlashCookie leaves room for cookie attributes under the 4096 byte
	// per-cookie limit browsers enforce.
	maxFlashCookie = 3900
	// maxFlashFormValue is a little above the longest field any form accepts.
	maxFlashFormValue = 520
)

// Flash is the single-use state handed from a write to the page rendered
// after its redirect: a notice on success, or the rejected form and its errors.
type Flash struct {
	Notice string            `json:"notice,omitempty"`
	Alert  string            `json:"alert,omitempty"`
	Form   map[string]string `json:"form,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (f Flash) Empty() bool {
	return f.Notice == "" && f.Alert == "" && len(f.Form) == 0 && len(f.Errors) == 0
}

type FlashStore interface {
	Set(w http.ResponseWriter, f Flash) error
	Pop(w http.ResponseWriter, r *http.Request) Flash
}

type flashClaims struct {
	Flash Flash `json:"flash"`
	jwt.RegisteredClaims
}

// CookieFlash keeps the flash in an HS256-signed cookie.
type CookieFlash struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewCookieFlash(secret string, ttl time.Duration, secure bool) *CookieFlash {
	return &CookieFlash{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Set signs f into the flash cookie. A flash that would not fit in one
// cookie keeps its messages and errors; long form values are cut first and
// the form is dropped if that is still not enough.
func (s *CookieFlash) Set(w http.ResponseWriter, f Flash) error {
	token, err := s.sign(f)
	if err != nil {
		return err
	}
	if !fitsCookie(token) && len(f.Form) > 0 {
		f.Form = truncateForm(f.Form, maxFlashFormValue)
		if token, err = s.sign(f); err != nil {
			return err
		}
	}
	if !fitsCookie(token) && len(f.Form) > 0 {
		f.Form = nil
		if token, err = s.sign(f); err != nil {
			return err
		}
	}
	if !fitsCookie(token) {
		return errors.New("flash too large for a cookie")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieFlash) sign(f Flash) (string, error) {
	now := time.Now()
	claims := flashClaims{
		Flash: f,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func fitsCookie(token string) bool {
	return len(FlashCookie)+1+len(token) <= maxFlashCookie
}

// truncateForm returns a copy of form with every value cut to limit runes.
func truncateForm(form map[string]string, limit int) map[string]string {
	out := make(map[string]string, len(form))
	for k, v := range form {
		if utf8.RuneCountInString(v) > limit {
			v = string([]rune(v)[:limit])
		}
		out[k] = v
	}
	return out
}

// Pop returns the pending flash and clears the cookie. A missing, expired
// or tampered cookie yields an empty flash.
func (s *CookieFlash) Pop(w http.ResponseWriter, r *http.Request) Flash {
	c, err := r.Cookie(FlashCookie)
	if err != nil {
		return Flash{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	f, err := s.parse(c.Value)
	if err != nil {
		return Flash{}
	}
	return f
}

func (s *CookieFlash) parse(token string) (Flash, error) {
	var claims flashClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return Flash{}, err
	}
	if !parsed.Valid {
		return Flash{}, errors.New("invalid flash token")
	}
	return claims.Flash, nil
}
