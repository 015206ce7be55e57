package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/observability"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

type gateHarness struct {
	app      *fiber.App
	metrics  *observability.Metrics
	reached  atomic.Int32
	identity atomic.Pointer[Identity]
}

func newGateHarness(t *testing.T, verifier CredentialVerifier, now time.Time) *gateHarness {
	t.Helper()
	h := &gateHarness{app: fiber.New(), metrics: observability.NewMetrics()}
	gate := NewGate(verifier, DefaultRoutePolicy(), zap.NewNop(),
		WithClock(func() time.Time { return now }),
		WithMetrics(h.metrics))

	h.app.Use(gate.Handle)
	h.app.All("/*", func(c *fiber.Ctx) error {
		h.reached.Add(1)
		if id, err := Resolve(c); err == nil {
			h.identity.Store(&id)
		}
		return c.SendStatus(http.StatusOK)
	})
	return h
}

func (h *gateHarness) do(t *testing.T, method, path, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) errorutil.ErrorResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env errorutil.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func assertRejected(t *testing.T, h *gateHarness, resp *http.Response, status int, message string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	assert.Equal(t, ContentTypeJSON, resp.Header.Get(fiber.HeaderContentType))
	env := decodeEnvelope(t, resp)
	assert.Equal(t, errorutil.ErrorResponse{
		Status:  errorutil.StatusName(status),
		Code:    status,
		Message: message,
	}, env)
	assert.Zero(t, h.reached.Load(), "handler must not run after rejection")
}

type spyVerifier struct {
	calls    atomic.Int32
	identity Identity
	err      error
	panicVal any
}

func (s *spyVerifier) Verify(string, time.Time) (Identity, error) {
	s.calls.Add(1)
	if s.panicVal != nil {
		panic(s.panicVal)
	}
	return s.identity, s.err
}

func issue(t *testing.T, tm *TokenManager, id int64, email string, role domain.UserRole) string {
	t.Helper()
	token, _, err := tm.Issue(id, email, role, t0)
	require.NoError(t, err)
	return BearerValue(token)
}

func TestGate_ExemptPathSkipsCredentialWork(t *testing.T) {
	spy := &spyVerifier{err: errors.New("must not be called")}
	h := newGateHarness(t, spy, t0)

	for _, auth := range []string{"", "Bearer garbage"} {
		resp := h.do(t, http.MethodPost, "/auth/signin", auth)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Zero(t, spy.calls.Load())
	assert.Equal(t, int32(2), h.reached.Load())
	assert.Nil(t, h.identity.Load())
}

func TestGate_ValidTokenInjectsIdentity(t *testing.T) {
	tm := newTestManager(t)
	h := newGateHarness(t, tm, t0.Add(time.Minute))

	resp := h.do(t, http.MethodGet, "/todos/1", issue(t, tm, 1, "user@example.com", domain.UserRoleUser))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got := h.identity.Load()
	require.NotNil(t, got)
	assert.Equal(t, Identity{UserID: 1, Email: "user@example.com", Role: domain.UserRoleUser}, *got)
}

func TestGate_MissingHeader(t *testing.T) {
	spy := &spyVerifier{}
	h := newGateHarness(t, spy, t0)

	resp := h.do(t, http.MethodGet, "/todos", "")

	assertRejected(t, h, resp, http.StatusUnauthorized, MsgAuthenticationRequired)
	assert.Zero(t, spy.calls.Load())
	assert.Equal(t, int64(1), h.metrics.Snapshot().Errors["/todos|GET|MISSING_CREDENTIAL"])
}

func TestGate_ExpiredToken(t *testing.T) {
	tm := newTestManager(t)
	h := newGateHarness(t, tm, t0.Add(2*time.Hour))

	resp := h.do(t, http.MethodGet, "/todos", issue(t, tm, 1, "user@example.com", domain.UserRoleUser))

	assertRejected(t, h, resp, http.StatusUnauthorized, MsgAuthenticationRequired)
	errs := h.metrics.Snapshot().Errors
	assert.Equal(t, int64(1), errs["/todos|GET|EXPIRED_CREDENTIAL"])
	assert.Zero(t, errs["/todos|GET|MISSING_CREDENTIAL"])
}

func TestGate_MalformedTokens(t *testing.T) {
	tm := newTestManager(t)
	valid := issue(t, tm, 1, "user@example.com", domain.UserRoleUser)

	tests := map[string]string{
		"garbage":         "Bearer invalid-token",
		"empty":           "Bearer ",
		"other scheme":    "Basic dXNlcjpwYXNz",
		"no delimiter":    "Bearer",
		"tampered":        valid[:len(valid)-4] + "abcd",
		"wrong secret":    BearerValue(signRaw(t, &Claims{UserRole: "ADMIN", RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour))}}, "other")),
		"raw without tag": valid[len("Bearer "):],
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			h := newGateHarness(t, tm, t0.Add(time.Minute))
			resp := h.do(t, http.MethodGet, "/todos", header)
			assertRejected(t, h, resp, http.StatusBadRequest, MsgAuthenticationRequired)
		})
	}
}

func TestGate_UnexpectedFailures(t *testing.T) {
	tm := newTestManager(t)
	badRole := BearerValue(signRaw(t, &Claims{
		UserRole:         "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour))},
	}, testSecret))

	t.Run("verifier error", func(t *testing.T) {
		h := newGateHarness(t, &spyVerifier{err: errors.New("database exploded")}, t0)
		resp := h.do(t, http.MethodGet, "/todos", "Bearer x")
		assertRejected(t, h, resp, http.StatusInternalServerError, MsgInternalError)
	})

	t.Run("verifier panic", func(t *testing.T) {
		h := newGateHarness(t, &spyVerifier{panicVal: "boom"}, t0)
		resp := h.do(t, http.MethodGet, "/todos", "Bearer x")
		assertRejected(t, h, resp, http.StatusInternalServerError, MsgInternalError)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		h := newGateHarness(t, tm, t0)
		resp := h.do(t, http.MethodGet, "/todos", badRole)
		assertRejected(t, h, resp, http.StatusInternalServerError, MsgInternalError)
	})
}

func TestGate_AdminPrefix(t *testing.T) {
	tm := newTestManager(t)

	t.Run("user role is forbidden", func(t *testing.T) {
		h := newGateHarness(t, tm, t0.Add(time.Second))
		resp := h.do(t, http.MethodPatch, "/admin/users/7", issue(t, tm, 2, "user@example.com", domain.UserRoleUser))
		assertRejected(t, h, resp, http.StatusForbidden, MsgAccessDenied)
	})

	t.Run("case variants are still guarded", func(t *testing.T) {
		h := newGateHarness(t, tm, t0.Add(time.Second))
		resp := h.do(t, http.MethodPatch, "/ADMIN/users/7", issue(t, tm, 2, "user@example.com", domain.UserRoleUser))
		assertRejected(t, h, resp, http.StatusForbidden, MsgAccessDenied)
	})

	t.Run("admin role is forwarded", func(t *testing.T) {
		h := newGateHarness(t, tm, t0.Add(time.Second))
		resp := h.do(t, http.MethodPatch, "/admin/users/7", issue(t, tm, 100, "admin@example.com", domain.UserRoleAdmin))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, h.identity.Load())
		assert.Equal(t, domain.UserRoleAdmin, h.identity.Load().Role)
	})
}

func TestGate_AdminScenarioAcrossExpiry(t *testing.T) {
	tm := newTestManager(t)
	bearer := issue(t, tm, 42, "a@b.com", domain.UserRoleAdmin)

	h := newGateHarness(t, tm, t0.Add(time.Second))
	resp := h.do(t, http.MethodGet, "/admin/users/7", bearer)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, h.identity.Load())
	assert.Equal(t, Identity{UserID: 42, Email: "a@b.com", Role: domain.UserRoleAdmin}, *h.identity.Load())

	late := newGateHarness(t, tm, t0.Add(tm.TTL()+time.Second))
	resp = late.do(t, http.MethodGet, "/admin/users/7", bearer)
	assertRejected(t, late, resp, http.StatusUnauthorized, MsgAuthenticationRequired)
}

func TestGate_IdentityIsPerRequest(t *testing.T) {
	tm := newTestManager(t)
	h := newGateHarness(t, tm, t0.Add(time.Second))

	resp := h.do(t, http.MethodGet, "/todos", issue(t, tm, 5, "five@example.com", domain.UserRoleUser))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	h.identity.Store(nil)
	resp = h.do(t, http.MethodGet, "/auth/signin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, h.identity.Load(), "exempt request must not see a previous request's identity")
}
