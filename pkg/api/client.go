// Package api provides a client for the DomRobot JSON-RPC-over-HTTP API.
// A Client issues one POST per call, carries the session cookie obtained
// at login across calls, and completes the optional two-factor unlock
// step during the login handshake.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/regdrive/domrobot/pkg/methods"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Well-known API endpoints. The OTE endpoint is a sandbox environment
// with the same wire protocol as production.
const (
	ProductionEndpoint = "https://api.domrobot.com/jsonrpc/"
	OTEEndpoint        = "https://api.ote.domrobot.com/jsonrpc/"
)

// DefaultLang is the response language used when none is configured.
const DefaultLang = "en"

// Response languages supported by the API.
var supportedLangs = []language.Tag{
	language.English,
	language.German,
	language.Spanish,
}

var langMatcher = language.NewMatcher(supportedLangs)

// normalizeLang maps a language code onto one of the supported response
// languages, accepting regional variants such as "de-AT".
func normalizeLang(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", ErrUnsupportedLanguage.MsgErr(fmt.Sprintf("cannot parse language %q", lang), err)
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf < language.High {
		return "", ErrUnsupportedLanguage.New(fmt.Sprintf("unsupported response language %q", lang))
	}
	base, _ := supportedLangs[idx].Base()
	return base.String(), nil
}

// Param map keys the client fills in when the caller declares them.
// Keys that are absent from a call's params are never introduced.
const (
	transactionIDKey = "clTRID"
	langKey          = "lang"
)

// Client is a session-bound API client. The session cookie set by
// account.login is the only state carried between calls.
//
// A Client represents a single logical session and is not synchronized;
// concurrent calls on one instance race on the session cookie. Use one
// Client per session.
type Client struct {
	endpoint   string
	lang       string
	debug      bool
	cookie     string
	logger     zerolog.Logger
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint. An empty endpoint
// selects the OTE sandbox; an empty lang selects English. The session
// cookie starts absent and is populated by Login.
func NewClient(endpoint, lang string, debug bool) (*Client, error) {
	if endpoint == "" {
		endpoint = OTEEndpoint
	}
	if lang == "" {
		lang = DefaultLang
	}
	normalized, err := normalizeLang(lang)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint:   endpoint,
		lang:       normalized,
		debug:      debug,
		logger:     zerolog.New(os.Stderr).With().Timestamp().Logger(),
		httpClient: &http.Client{},
	}, nil
}

// Endpoint returns the target URL the client was constructed with.
func (c *Client) Endpoint() string { return c.endpoint }

// Lang returns the default response language.
func (c *Client) Lang() string { return c.lang }

// SetLang changes the default response language.
func (c *Client) SetLang(lang string) error {
	normalized, err := normalizeLang(lang)
	if err != nil {
		return err
	}
	c.lang = normalized
	return nil
}

// Debug reports whether request/response logging is enabled.
func (c *Client) Debug() bool { return c.debug }

// SetDebug toggles request/response logging.
func (c *Client) SetDebug(debug bool) { c.debug = debug }

// Cookie returns the current session cookie, or the empty string when no
// session is established.
func (c *Client) Cookie() string { return c.cookie }

// SetLogger replaces the logger used for debug output.
func (c *Client) SetLogger(logger zerolog.Logger) { c.logger = logger }

// SetHTTPClient replaces the underlying HTTP client, e.g. to configure
// timeouts or a custom transport.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

type callConfig struct {
	lang          string
	transactionID string
	omitTxnID     bool
}

// CallOption adjusts a single call.
type CallOption func(*callConfig)

// WithLang overrides the response language for one call.
func WithLang(lang string) CallOption {
	return func(cfg *callConfig) { cfg.lang = lang }
}

// WithTransactionID sets the transaction-correlation id for one call
// instead of generating one.
func WithTransactionID(id string) CallOption {
	return func(cfg *callConfig) { cfg.transactionID = id }
}

// WithoutTransactionID leaves a declared transaction-id slot untouched
// instead of filling it with a generated value.
func WithoutTransactionID() CallOption {
	return func(cfg *callConfig) { cfg.omitTxnID = true }
}

// newTransactionID generates a correlation token of the form
// "DomRobot-<integer>".
func newTransactionID() string {
	return fmt.Sprintf("DomRobot-%d", rand.Int63n(1_000_000_000))
}

type rpcRequest struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

// Call invokes a named remote method with the given parameter map.
//
// If params declares a "clTRID" key it is filled with the supplied or a
// freshly generated transaction id; if params declares a "lang" key it is
// filled with the per-call or default language. Keys the caller did not
// declare are never added. params is mutated in place.
//
// Calling the account.login method captures the response's Set-Cookie
// header into the session state as a side effect, regardless of the
// result code. Remote result codes are returned as data; only transport
// and parse failures produce errors.
func (c *Client) Call(ctx context.Context, method string, params map[string]any, opts ...CallOption) (*Response, error) {
	if method == "" {
		return nil, ErrRequestEncode.New("method name must not be empty")
	}

	cfg := callConfig{lang: c.lang}
	for _, opt := range opts {
		opt(&cfg)
	}

	if params == nil {
		params = map[string]any{}
	}
	if _, ok := params[transactionIDKey]; ok && !cfg.omitTxnID {
		id := cfg.transactionID
		if id == "" {
			id = newTransactionID()
		}
		params[transactionIDKey] = id
	}
	if _, ok := params[langKey]; ok {
		params[langKey] = cfg.lang
	}

	body, err := json.Marshal(rpcRequest{Method: method, Params: params})
	if err != nil {
		return nil, ErrRequestEncode.Err(err)
	}

	if c.debug {
		c.logger.Info().Str("method", method).RawJSON("request", body).Msg("api request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, ErrTransport.Err(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent())
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	httpRsp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrTransport.Err(err)
	}
	defer httpRsp.Body.Close()

	// The cookie is captured verbatim whenever the login method was
	// called, before the body is even parsed. This mirrors the session
	// semantics of the API: Set-Cookie on the login response is the sole
	// carrier of session state.
	if method == methods.AccountLogin {
		c.cookie = httpRsp.Header.Get("Set-Cookie")
	}

	raw, err := io.ReadAll(httpRsp.Body)
	if err != nil {
		return nil, ErrTransport.Err(err)
	}

	rsp := &Response{Raw: raw}
	if err := json.Unmarshal(raw, rsp); err != nil {
		return nil, ErrResponseFormat.Err(err)
	}

	if c.debug {
		c.logger.Info().Str("method", method).RawJSON("response", bytes.TrimSpace(raw)).Msg("api response")
	}

	return rsp, nil
}

// Login authenticates the session with account.login and stores the
// session cookie from the response.
//
// When the server signals a pending two-factor challenge (resData.tfa not
// "0"), the shared secret is used to compute an RFC 6238 TOTP code and
// complete the challenge via account.unlock. Without a shared secret the
// login fails with ErrTwoFactorRequired; note that the cookie captured by
// the login round trip remains in place in that case, matching the
// historical behavior of the API's reference clients.
//
// A failed unlock returns the unlock result in place of the login result
// so the caller sees the result code of the step that rejected it.
func (c *Client) Login(ctx context.Context, username, password string, sharedSecret ...string) (*Response, error) {
	rsp, err := c.Call(ctx, methods.AccountLogin, map[string]any{
		"user": username,
		"pass": password,
	})
	if err != nil {
		return nil, err
	}
	if rsp.Code != StatusOK {
		return rsp, nil
	}

	tfa := rsp.Get("resData.tfa")
	if !tfa.Exists() || tfa.String() == "0" {
		return rsp, nil
	}

	secret := ""
	if len(sharedSecret) > 0 {
		secret = sharedSecret[0]
	}
	if secret == "" {
		return nil, ErrTwoFactorRequired
	}

	tan, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		return nil, ErrTwoFactorRequired.MsgErr("cannot compute one-time password from shared secret", err)
	}

	unlockRsp, err := c.Call(ctx, methods.AccountUnlock, map[string]any{"tan": tan})
	if err != nil {
		return nil, err
	}
	if unlockRsp.Code != StatusOK {
		return unlockRsp, nil
	}
	return rsp, nil
}

// Logout ends the session with account.logout. The session cookie is
// cleared once the call finishes, regardless of the result code, so the
// client returns to its anonymous state either way.
func (c *Client) Logout(ctx context.Context) (*Response, error) {
	defer func() { c.cookie = "" }()
	return c.Call(ctx, methods.AccountLogout, nil)
}
