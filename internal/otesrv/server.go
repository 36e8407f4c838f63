// Package otesrv implements a local sandbox registrar server speaking the
// DomRobot wire protocol. It exists so the client library and its users
// have a faithful endpoint for development and tests: account.login with
// an optional TOTP challenge, session cookies, and a small zone table for
// domain.check.
package otesrv

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server is the sandbox registrar. Router is exported so tests can drive
// it in-process through httptest without binding a port.
type Server struct {
	Router *chi.Mux

	cfg        *Config
	cred       credential
	sessions   *sessionStore
	registered map[string]bool
}

// CreateNewServer builds a server from the given configuration. The
// account password is converted to an Argon2id digest; the plaintext is
// not retained.
func CreateNewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cred, err := newCredential(cfg.Account.Password)
	if err != nil {
		return nil, errors.Wrap(err, "deriving password digest")
	}

	signingKey := []byte(cfg.SigningKey)
	if len(signingKey) == 0 {
		signingKey = make([]byte, 32)
		if _, err := rand.Read(signingKey); err != nil {
			return nil, errors.Wrap(err, "generating session signing key")
		}
	}

	registered := make(map[string]bool, len(cfg.Registered))
	for _, name := range cfg.Registered {
		registered[name] = true
	}

	return &Server{
		Router:     chi.NewRouter(),
		cfg:        cfg,
		cred:       cred,
		sessions:   newSessionStore(signingKey, cfg.sessionValidity()),
		registered: registered,
	}, nil
}

// MountHandlers wires middleware and routes onto the router.
func (s *Server) MountHandlers() {
	s.Router.Use(requestLogger)
	s.Router.Use(panicHandler)
	if s.cfg.HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"POST", "GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Cookie"},
		}))
	}

	s.Router.Post("/jsonrpc/", s.handleRPC)
	s.Router.Get("/version", s.getVersion)
}

// ServerVersion identifies the sandbox in its version endpoint.
const ServerVersion = "0.1.0"

type getVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	APIVersion    string `json:"apiVersion"`
}

func (s *Server) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	sendJSON(w, http.StatusOK, &getVersionRsp{
		ServerVersion: "DomRobot OTE Sandbox: " + ServerVersion,
		APIVersion:    "1.0",
	})
}

// requestLogger logs one line per request and stamps the logger into the
// request context.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := log.With().Str("path", r.URL.Path).Str("req_method", r.Method).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		logger.Debug().Dur("elapsed", time.Since(start)).Msg("request served")
	})
}

// panicHandler converts handler panics into a 500 instead of tearing the
// connection down.
func panicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zerolog.Ctx(r.Context()).Error().Interface("panic", rec).Msg("handler panic")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
