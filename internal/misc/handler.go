package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/foracure/backend/internal/auth"
	"github.com/foracure/backend/internal/middleware"
	"github.com/foracure/backend/internal/telemetry/metrics"
	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type authService interface {
	Login(ctx context.Context, creds auth.Credentials) (string, error)
	SessionTTL() time.Duration
}

type statusResponse struct {
	Status string `json:"status"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type verifyResponse struct {
	Authenticated bool `json:"authenticated"`
}

type Handler struct {
	versionInfo    string
	authService    authService
	metricsManager *metrics.Manager
}

func NewHandler(
	versionInfo string,
	authService authService,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		versionInfo:    versionInfo,
		authService:    authService,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	trustedProxies []netip.Prefix,
	adminGuard func(http.Handler) http.Handler,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	// failed and successful attempts alike count against the client's login budget
	loginRateLimit := middleware.RateLimit(rateLimiter, "login", trustedProxies, handler.metricsManager)
	mainRouter.
		Handle("/login", loginRateLimit(http.HandlerFunc(handler.handleLogin))).
		Methods("POST").Name("login")
	mainRouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("POST").Name("logout")
	mainRouter.
		Handle("/verify", adminGuard(http.HandlerFunc(handler.handleVerify))).
		Methods("GET").Name("verify")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONOK(w, statusResponse{Status: "ok"})
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONOK(w, versionResponse{Version: handler.versionInfo})
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	// an unreadable body ends up as empty credentials and fails like any other bad login
	var creds auth.Credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			log.Debugf("login, unmarshal json params: %s", err)
			creds = auth.Credentials{}
		}
	} else if err := r.ParseForm(); err == nil {
		creds = auth.Credentials{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	token, err := handler.authService.Login(ctx, creds)
	if errors.Is(err, auth.ErrUnauthorized) {
		log.Tracef("failed login attempt for user: %s", creds.Username)
		handler.countLoginAttempt("failure")
		span.SetStatus(codes.Error, "invalid-credentials")
		pkg.WriteJSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed, issue token: %s", err)
		handler.countLoginAttempt("error")
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.countLoginAttempt("success")
	log.Trace("new login success")

	http.SetCookie(w, auth.NewSessionCookie(token, handler.authService.SessionTTL()))
	pkg.WriteJSONOK(w, pkg.SuccessResponse{Success: true})
}

// handleLogout only clears the cookie on the client. Tokens are not tracked
// server side, so a copied token stays valid until it expires.
func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	http.SetCookie(w, auth.ClearedSessionCookie())
	pkg.WriteJSONOK(w, pkg.SuccessResponse{Success: true})
}

func (handler *Handler) handleVerify(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONOK(w, verifyResponse{Authenticated: true})
}

func (handler *Handler) countLoginAttempt(result string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterLoginAttempts.With(prometheus.Labels{"result": result}).Inc()
}
