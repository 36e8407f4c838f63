package otesrv

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog/log"

	"github.com/regdrive/domrobot/pkg/api"
	"github.com/regdrive/domrobot/pkg/methods"
)

type rpcRequest struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type rpcResponse struct {
	Code    int            `json:"code"`
	Msg     string         `json:"msg"`
	ResData map[string]any `json:"resData,omitempty"`
}

// Result messages in the registrar's status vocabulary.
const (
	msgOK             = "Command completed successfully"
	msgMissingParam   = "Required parameter missing"
	msgSyntaxError    = "Command syntax error"
	msgUnknownCommand = "Unknown command"
	msgAuthError      = "Authentication error"
)

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

// sendResult writes an RPC result. Application-level failures still ride
// on HTTP 200; the code field is the protocol's error channel.
func sendResult(w http.ResponseWriter, code int, msg string, resData map[string]any) {
	sendJSON(w, http.StatusOK, &rpcResponse{Code: code, Msg: msg, ResData: resData})
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendResult(w, api.StatusSyntaxError, msgSyntaxError, nil)
		return
	}
	log.Ctx(r.Context()).Debug().Str("method", req.Method).Msg("rpc call")

	switch req.Method {
	case methods.AccountLogin:
		s.accountLogin(w, req.Params)
	case methods.AccountUnlock:
		s.accountUnlock(w, r, req.Params)
	case methods.AccountLogout:
		s.accountLogout(w, r)
	case methods.AccountInfo:
		s.accountInfo(w, r)
	case methods.DomainCheck:
		s.domainCheck(w, r, req.Params)
	default:
		sendResult(w, api.StatusUnknownCommand, msgUnknownCommand, nil)
	}
}

// stringParam extracts a string parameter, reporting whether it was
// present and non-empty.
func stringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}

func (s *Server) accountLogin(w http.ResponseWriter, params map[string]any) {
	user, okUser := stringParam(params, "user")
	pass, okPass := stringParam(params, "pass")
	if !okUser || !okPass {
		sendResult(w, api.StatusMissingParam, msgMissingParam, nil)
		return
	}
	if user != s.cfg.Account.Username || !s.cred.verify(pass) {
		sendResult(w, api.StatusAuthError, msgAuthError, nil)
		return
	}

	tfa := "0"
	state := sessionActive
	if s.cfg.Account.SharedSecret != "" {
		tfa = "GOOGLE-AUTH"
		state = sessionPending
	}
	cookie, err := s.sessions.issue(user, state)
	if err != nil {
		sendResult(w, api.StatusCommandFailed, "Command failed", nil)
		return
	}
	w.Header().Set("Set-Cookie", cookie)
	sendResult(w, api.StatusOK, msgOK, map[string]any{
		"customerId": s.cfg.Account.CustomerID,
		"tfa":        tfa,
	})
}

func (s *Server) accountUnlock(w http.ResponseWriter, r *http.Request, params map[string]any) {
	id, state, ok := s.sessions.lookup(r)
	if !ok {
		sendResult(w, api.StatusAuthError, msgAuthError, nil)
		return
	}
	tan, okTan := stringParam(params, "tan")
	if !okTan {
		sendResult(w, api.StatusMissingParam, msgMissingParam, nil)
		return
	}
	if state == sessionActive {
		// Nothing pending; the unlock is a no-op success.
		sendResult(w, api.StatusOK, msgOK, nil)
		return
	}
	if !totp.Validate(tan, s.cfg.Account.SharedSecret) {
		sendResult(w, api.StatusAuthError, msgAuthError, nil)
		return
	}
	s.sessions.activate(id)
	sendResult(w, api.StatusOK, msgOK, nil)
}

func (s *Server) accountLogout(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.sessions.lookup(r)
	if !ok {
		sendResult(w, api.StatusAuthError, msgAuthError, nil)
		return
	}
	s.sessions.drop(id)
	sendResult(w, api.StatusOK, msgOK, nil)
}

// requireActive resolves the request's session and rejects pending or
// missing ones.
func (s *Server) requireActive(w http.ResponseWriter, r *http.Request) bool {
	_, state, ok := s.sessions.lookup(r)
	if !ok || state != sessionActive {
		sendResult(w, api.StatusAuthError, msgAuthError, nil)
		return false
	}
	return true
}

func (s *Server) accountInfo(w http.ResponseWriter, r *http.Request) {
	if !s.requireActive(w, r) {
		return
	}
	sendResult(w, api.StatusOK, msgOK, map[string]any{
		"customerId": s.cfg.Account.CustomerID,
		"username":   s.cfg.Account.Username,
	})
}

func (s *Server) domainCheck(w http.ResponseWriter, r *http.Request, params map[string]any) {
	if !s.requireActive(w, r) {
		return
	}

	var names []string
	switch v := params["domain"].(type) {
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		sendResult(w, api.StatusMissingParam, msgMissingParam, nil)
		return
	}

	checked := make([]any, 0, len(names))
	for _, name := range names {
		avail := 1
		status := "free"
		if s.registered[name] {
			avail = 0
			status = "assigned"
		}
		checked = append(checked, map[string]any{
			"domain":    name,
			"avail":     avail,
			"status":    status,
			"checktime": time.Now().Unix(),
		})
	}
	sendResult(w, api.StatusOK, msgOK, map[string]any{"domain": checked})
}
