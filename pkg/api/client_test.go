package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regdrive/domrobot/pkg/api"
	"github.com/regdrive/domrobot/pkg/methods"
)

const testSharedSecret = "JBSWY3DPEHPK3PXP"

type wireRequest struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

func decodeRequest(t *testing.T, r *http.Request) wireRequest {
	t.Helper()
	var req wireRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func writeResult(w http.ResponseWriter, code int, resData map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	rsp := map[string]any{"code": code, "msg": "msg"}
	if resData != nil {
		rsp["resData"] = resData
	}
	json.NewEncoder(w).Encode(rsp)
}

// newTestClient builds a client pointed at a handler-backed server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL, "en", false)
	require.NoError(t, err)
	return client
}

func TestNewClientDefaults(t *testing.T) {
	client, err := api.NewClient("", "", false)
	require.NoError(t, err)
	assert.Equal(t, api.OTEEndpoint, client.Endpoint())
	assert.Equal(t, "en", client.Lang())
	assert.Empty(t, client.Cookie())
}

func TestLanguageHandling(t *testing.T) {
	client, err := api.NewClient("", "de", false)
	require.NoError(t, err)
	assert.Equal(t, "de", client.Lang())

	// Regional variants collapse onto the supported base language.
	require.NoError(t, client.SetLang("es-MX"))
	assert.Equal(t, "es", client.Lang())

	err = client.SetLang("fr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnsupportedLanguage))
	assert.Equal(t, "es", client.Lang())

	_, err = api.NewClient("", "klingon", false)
	assert.Error(t, err)
}

var transactionIDPattern = regexp.MustCompile(`^DomRobot-(\d+)$`)

func TestCallFillsDeclaredTransactionID(t *testing.T) {
	var got wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeResult(w, api.StatusOK, nil)
	})

	params := map[string]any{"domain": "example.com", "clTRID": ""}
	_, err := client.Call(context.Background(), methods.DomainCheck, params)
	require.NoError(t, err)

	id, ok := got.Params["clTRID"].(string)
	require.True(t, ok)
	m := transactionIDPattern.FindStringSubmatch(id)
	require.NotNil(t, m, "transaction id %q does not match DomRobot-<integer>", id)
	n, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	assert.Less(t, n, int64(1_000_000_000))
}

func TestCallDoesNotIntroduceTransactionID(t *testing.T) {
	var got wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeResult(w, api.StatusOK, nil)
	})

	_, err := client.Call(context.Background(), methods.DomainCheck, map[string]any{"domain": "example.com"})
	require.NoError(t, err)

	_, present := got.Params["clTRID"]
	assert.False(t, present)
}

func TestCallExplicitTransactionID(t *testing.T) {
	var got wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeResult(w, api.StatusOK, nil)
	})

	params := map[string]any{"clTRID": ""}
	_, err := client.Call(context.Background(), methods.DomainList, params, api.WithTransactionID("DomRobot-42"))
	require.NoError(t, err)
	assert.Equal(t, "DomRobot-42", got.Params["clTRID"])
}

func TestCallWithoutTransactionIDLeavesSlot(t *testing.T) {
	var got wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeResult(w, api.StatusOK, nil)
	})

	params := map[string]any{"clTRID": "keep-me"}
	_, err := client.Call(context.Background(), methods.DomainList, params, api.WithoutTransactionID())
	require.NoError(t, err)
	assert.Equal(t, "keep-me", got.Params["clTRID"])
}

func TestCallFillsDeclaredLangSlot(t *testing.T) {
	var got wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeResult(w, api.StatusOK, nil)
	})

	_, err := client.Call(context.Background(), methods.AccountInfo, map[string]any{"lang": ""})
	require.NoError(t, err)
	assert.Equal(t, "en", got.Params["lang"])

	_, err = client.Call(context.Background(), methods.AccountInfo, map[string]any{"lang": ""}, api.WithLang("de"))
	require.NoError(t, err)
	assert.Equal(t, "de", got.Params["lang"])

	_, err = client.Call(context.Background(), methods.AccountInfo, map[string]any{})
	require.NoError(t, err)
	_, present := got.Params["lang"]
	assert.False(t, present)
}

func TestCallSendsHeaders(t *testing.T) {
	var contentType, userAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		userAgent = r.Header.Get("User-Agent")
		writeResult(w, api.StatusOK, nil)
	})

	_, err := client.Call(context.Background(), methods.AccountInfo, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Contains(t, userAgent, "go-domrobot/"+api.Version)
}

func TestLoginSetsCookieAndReusesIt(t *testing.T) {
	var seenCookie string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Method == methods.AccountLogin {
			w.Header().Set("Set-Cookie", "domrobot=abc123")
			writeResult(w, api.StatusOK, map[string]any{"tfa": "0"})
			return
		}
		seenCookie = r.Header.Get("Cookie")
		writeResult(w, api.StatusOK, nil)
	})

	rsp, err := client.Login(context.Background(), "user", "pass")
	require.NoError(t, err)
	assert.True(t, rsp.OK())
	assert.Equal(t, "domrobot=abc123", client.Cookie())

	_, err = client.Call(context.Background(), methods.DomainList, nil)
	require.NoError(t, err)
	assert.Equal(t, "domrobot=abc123", seenCookie)
}

// The cookie capture is a side effect of calling the login method, not of
// its success.
func TestLoginCookieCapturedOnRejectedLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "domrobot=rejected")
		writeResult(w, api.StatusAuthError, nil)
	})

	rsp, err := client.Login(context.Background(), "user", "wrong")
	require.NoError(t, err)
	assert.Equal(t, api.StatusAuthError, rsp.Code)
	assert.Equal(t, "domrobot=rejected", client.Cookie())
}

// A challenged login without a shared secret fails before any unlock
// attempt, but the cookie captured by the login round trip stays in
// place. The latter is a known inconsistency preserved from the original
// session semantics.
func TestLoginTwoFactorNoSecretKeepsCookie(t *testing.T) {
	unlockCalls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		switch req.Method {
		case methods.AccountLogin:
			w.Header().Set("Set-Cookie", "domrobot=pending")
			writeResult(w, api.StatusOK, map[string]any{"tfa": "GOOGLE-AUTH"})
		case methods.AccountUnlock:
			unlockCalls++
			writeResult(w, api.StatusOK, nil)
		}
	})

	_, err := client.Login(context.Background(), "user", "pass")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrTwoFactorRequired))
	assert.Zero(t, unlockCalls, "unlock must not be attempted without a shared secret")
	assert.Equal(t, "domrobot=pending", client.Cookie())
}

func TestLoginTwoFactorUnlock(t *testing.T) {
	unlockCalls := 0
	var tan string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		switch req.Method {
		case methods.AccountLogin:
			w.Header().Set("Set-Cookie", "domrobot=pending")
			writeResult(w, api.StatusOK, map[string]any{"tfa": "GOOGLE-AUTH", "customerId": 4711})
		case methods.AccountUnlock:
			unlockCalls++
			tan, _ = req.Params["tan"].(string)
			if totp.Validate(tan, testSharedSecret) {
				writeResult(w, api.StatusOK, nil)
			} else {
				writeResult(w, api.StatusAuthError, nil)
			}
		}
	})

	rsp, err := client.Login(context.Background(), "user", "pass", testSharedSecret)
	require.NoError(t, err)

	require.Equal(t, 1, unlockCalls)
	assert.Len(t, tan, 6)
	assert.True(t, totp.Validate(tan, testSharedSecret))

	// On unlock success the original login result is returned.
	assert.True(t, rsp.OK())
	assert.Equal(t, "GOOGLE-AUTH", rsp.Get("resData.tfa").String())
	assert.Equal(t, int64(4711), rsp.Get("resData.customerId").Int())
}

func TestLoginTwoFactorUnlockFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		switch req.Method {
		case methods.AccountLogin:
			writeResult(w, api.StatusOK, map[string]any{"tfa": "GOOGLE-AUTH"})
		case methods.AccountUnlock:
			writeResult(w, api.StatusAuthError, map[string]any{"reason": "tan rejected"})
		}
	})

	// The server rejects the tan; the unlock result masks the login result.
	rsp, err := client.Login(context.Background(), "user", "pass", testSharedSecret)
	require.NoError(t, err)
	assert.Equal(t, api.StatusAuthError, rsp.Code)
	assert.Equal(t, "tan rejected", rsp.Get("resData.reason").String())
}

func TestLoginBadSharedSecret(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, api.StatusOK, map[string]any{"tfa": "GOOGLE-AUTH"})
	})

	_, err := client.Login(context.Background(), "user", "pass", "not base32!")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrTwoFactorRequired))
}

func TestLogoutClearsCookieRegardlessOfStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Method == methods.AccountLogin {
			w.Header().Set("Set-Cookie", "domrobot=abc123")
			writeResult(w, api.StatusOK, map[string]any{"tfa": "0"})
			return
		}
		writeResult(w, api.StatusCommandFailed, nil)
	})

	_, err := client.Login(context.Background(), "user", "pass")
	require.NoError(t, err)
	require.NotEmpty(t, client.Cookie())

	rsp, err := client.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, api.StatusCommandFailed, rsp.Code)
	assert.Empty(t, client.Cookie())
}

func TestDomainCheckRoundTrip(t *testing.T) {
	var got wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeResult(w, api.StatusOK, map[string]any{"available": true})
	})

	rsp, err := client.Call(context.Background(), methods.DomainCheck, map[string]any{"domain": "example.com"})
	require.NoError(t, err)

	assert.Equal(t, methods.DomainCheck, got.Method)
	assert.Equal(t, "example.com", got.Params["domain"])

	assert.Equal(t, api.StatusOK, rsp.Code)
	assert.True(t, rsp.OK())
	// The nested payload passes through untransformed.
	assert.Equal(t, true, rsp.ResData["available"])
	assert.True(t, rsp.Get("resData.available").Bool())
}

func TestRemoteErrorsAreData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, api.StatusObjectNotExists, nil)
	})

	rsp, err := client.Call(context.Background(), methods.DomainInfo, map[string]any{"domain": "nope.example"})
	require.NoError(t, err)
	assert.False(t, rsp.OK())
	assert.Equal(t, api.StatusObjectNotExists, rsp.Code)
}

func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	})

	_, err := client.Call(context.Background(), methods.AccountInfo, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrResponseFormat))
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := api.NewClient(ts.URL, "en", false)
	require.NoError(t, err)
	ts.Close()

	_, err = client.Call(context.Background(), methods.AccountInfo, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrTransport))
}

func TestEmptyMethodRejected(t *testing.T) {
	client, err := api.NewClient("", "", false)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestDebugLogging(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, api.StatusOK, map[string]any{"available": true})
	})
	var buf bytes.Buffer
	client.SetDebug(true)
	client.SetLogger(zerolog.New(&buf))

	_, err := client.Call(context.Background(), methods.DomainCheck, map[string]any{"domain": "example.com"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "api request")
	assert.Contains(t, out, "api response")
	assert.Contains(t, out, methods.DomainCheck)
	assert.Contains(t, out, `"available":true`)
}

func TestDebugLoggingOnFailedCall(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	var buf bytes.Buffer
	client.SetDebug(true)
	client.SetLogger(zerolog.New(&buf))

	_, err := client.Call(context.Background(), methods.AccountInfo, map[string]any{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "api request")
}

func TestCallContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writeResult(w, api.StatusOK, nil)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Call(ctx, methods.AccountInfo, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrTransport))
}
