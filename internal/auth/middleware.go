package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/observability"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// Messages written to callers. They never say why a credential was refused.
const (
	MsgAuthenticationRequired = "authentication required"
	MsgAccessDenied           = "access denied"
	MsgInternalError          = "internal processing error"
)

// ContentTypeJSON is the content type of every gate rejection.
const ContentTypeJSON = "application/json; charset=UTF-8"

// CredentialVerifier turns a raw credential into a verified identity.
type CredentialVerifier interface {
	Verify(token string, now time.Time) (Identity, error)
}

// Gate validates bearer tokens on every request, enforces the route policy and
// injects the verified identity for downstream handlers.
type Gate struct {
	verifier CredentialVerifier
	policy   RoutePolicy
	now      func() time.Time
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// GateOption customizes a Gate.
type GateOption func(*Gate)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// WithMetrics counts rejections by reason.
func WithMetrics(m *observability.Metrics) GateOption {
	return func(g *Gate) { g.metrics = m }
}

// NewGate constructs the middleware.
func NewGate(verifier CredentialVerifier, policy RoutePolicy, logger *zap.Logger, opts ...GateOption) *Gate {
	g := &Gate{verifier: verifier, policy: policy, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	return g
}

// Handle enforces authentication for every non-exempt route.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if g.policy.IsExempt(path) {
		return c.Next()
	}

	credential, present := ExtractBearer(c.Get(fiber.HeaderAuthorization))
	if !present {
		g.logger.Warn("authorization header missing", zap.String("uri", path))
		return g.reject(c, http.StatusUnauthorized, MsgAuthenticationRequired, "MISSING_CREDENTIAL")
	}

	identity, err := g.verify(credential)
	switch {
	case err == nil:
	case errors.Is(err, ErrExpiredToken):
		g.logger.Info("token expired", zap.String("uri", path))
		return g.reject(c, http.StatusUnauthorized, MsgAuthenticationRequired, "EXPIRED_CREDENTIAL")
	case errors.Is(err, ErrMalformedToken):
		g.logger.Error("token verification failed", zap.String("uri", path), zap.Error(err))
		return g.reject(c, http.StatusBadRequest, MsgAuthenticationRequired, "MALFORMED_CREDENTIAL")
	default:
		g.logger.Error("unexpected token verification error", zap.String("uri", path), zap.Error(err))
		return g.reject(c, http.StatusInternalServerError, MsgInternalError, "VERIFICATION_FAILURE")
	}

	if !g.policy.Allows(path, identity.Role) {
		g.logger.Warn("insufficient role",
			zap.Int64("user_id", identity.UserID),
			zap.String("role", string(identity.Role)),
			zap.String("uri", path))
		return g.reject(c, http.StatusForbidden, MsgAccessDenied, "INSUFFICIENT_ROLE")
	}

	inject(c, identity)
	return c.Next()
}

func (g *Gate) verify(credential string) (identity Identity, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("verifier panic: %v", r)
		}
	}()
	return g.verifier.Verify(credential, g.now())
}

func (g *Gate) reject(c *fiber.Ctx, status int, message, reason string) error {
	g.metrics.RecordError(c.Path(), c.Method(), reason)
	if err := c.Status(status).JSON(errorutil.NewErrorResponse(status, message)); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, ContentTypeJSON)
	return nil
}
