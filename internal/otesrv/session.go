package otesrv

import (
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// cookieName is the session cookie the sandbox issues on account.login
// and expects back on every authenticated request.
const cookieName = "domrobot"

type sessionState int

const (
	// sessionPending means the login round trip succeeded but the
	// two-factor challenge has not been answered yet.
	sessionPending sessionState = iota
	sessionActive
)

// sessionStore tracks issued sessions. Cookies are HS256-signed JWTs
// whose jti keys the in-memory state; a cookie that verifies but has no
// entry here (e.g. after logout) is rejected.
type sessionStore struct {
	mu         sync.Mutex
	signingKey []byte
	validity   time.Duration
	sessions   map[string]sessionState
}

func newSessionStore(signingKey []byte, validity time.Duration) *sessionStore {
	return &sessionStore{
		signingKey: signingKey,
		validity:   validity,
		sessions:   make(map[string]sessionState),
	}
}

// issue creates a new session and returns the Set-Cookie header value.
func (s *sessionStore) issue(subject string, state sessionState) (string, error) {
	now := time.Now()
	id := uuid.NewString()
	claims := jwt.RegisteredClaims{
		ID:        id,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()

	cookie := http.Cookie{Name: cookieName, Value: signed, HttpOnly: true}
	return cookie.String(), nil
}

// lookup resolves the session referenced by the request's cookie.
func (s *sessionStore) lookup(r *http.Request) (string, sessionState, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", 0, false
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return "", 0, false
	}

	s.mu.Lock()
	state, ok := s.sessions[claims.ID]
	s.mu.Unlock()
	if !ok {
		return "", 0, false
	}
	return claims.ID, state, true
}

// activate promotes a pending session after a successful unlock.
func (s *sessionStore) activate(id string) {
	s.mu.Lock()
	s.sessions[id] = sessionActive
	s.mu.Unlock()
}

// drop removes a session on logout.
func (s *sessionStore) drop(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
