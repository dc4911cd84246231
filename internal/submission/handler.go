package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/foracure/backend/internal/notify"
	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=submission_test

type emailDispatcher interface {
	SendContact(ctx context.Context, msg notify.ContactMessage) (string, error)
	SendSubscription(ctx context.Context, req notify.SubscriptionRequest) (string, error)
	SendTeamUp(ctx context.Context, req notify.TeamUpRequest) (string, error)
}

// Handler relays the public site forms to the organizational inbox
type Handler struct {
	dispatcher emailDispatcher
}

func NewHandler(dispatcher emailDispatcher) *Handler {
	return &Handler{
		dispatcher: dispatcher,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/contact", handler.handleContact).Methods("POST").Name("contact")
	router.HandleFunc("/subscribe", handler.handleSubscribe).Methods("POST").Name("subscribe")
	router.HandleFunc("/team-up", handler.handleTeamUp).Methods("POST").Name("team-up")
}

func (handler *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "submissionHandler.contact")
	defer span.End()

	var msg notify.ContactMessage
	if !decodeBody(w, r, &msg) {
		span.SetStatus(codes.Error, "decode-body")
		return
	}

	id, err := handler.dispatcher.SendContact(ctx, msg)
	handler.respond(w, "contact", id, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
}

func (handler *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "submissionHandler.subscribe")
	defer span.End()

	var req notify.SubscriptionRequest
	if !decodeBody(w, r, &req) {
		span.SetStatus(codes.Error, "decode-body")
		return
	}

	id, err := handler.dispatcher.SendSubscription(ctx, req)
	handler.respond(w, "subscribe", id, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
}

func (handler *Handler) handleTeamUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "submissionHandler.teamUp")
	defer span.End()

	var req notify.TeamUpRequest
	if !decodeBody(w, r, &req) {
		span.SetStatus(codes.Error, "decode-body")
		return
	}

	id, err := handler.dispatcher.SendTeamUp(ctx, req)
	handler.respond(w, "team-up", id, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
}

func (handler *Handler) respond(w http.ResponseWriter, kind, id string, err error) {
	switch {
	case err == nil:
		pkg.WriteJSONOK(w, pkg.SuccessResponse{Success: true, ID: id})
	case errors.Is(err, notify.ErrMissingFields):
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
	default:
		log.Errorf("send %s email: %s", kind, err)
		pkg.WriteJSONError(w, "Failed to send email", http.StatusInternalServerError)
	}
}

// decodeBody treats an unreadable body the same as an empty one
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Debugf("decode %s body: %s", r.URL.Path, err)
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return false
	}
	return true
}
