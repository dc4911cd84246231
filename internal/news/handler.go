package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/foracure/backend/internal/cache"
	"github.com/foracure/backend/internal/telemetry/metrics"
	"github.com/foracure/backend/internal/telemetry/tracing"
	"github.com/foracure/backend/pkg"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=news_test

const listCacheKey = "news:list"

type newsRepo interface {
	List(ctx context.Context) ([]Article, error)
	Add(ctx context.Context, article Article) (*Article, error)
	Update(ctx context.Context, id string, article Article) (*Article, error)
	Delete(ctx context.Context, id string) error
}

type articleRequest struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	CategoryType string `json:"categoryType"`
	Slug         string `json:"slug"`
	Image        string `json:"image"`
}

func (r articleRequest) toArticle() Article {
	return Article{
		Title:        r.Title,
		Date:         r.Date,
		Description:  r.Description,
		Category:     r.Category,
		CategoryType: r.CategoryType,
		Slug:         r.Slug,
		Image:        r.Image,
	}
}

type Handler struct {
	repo           newsRepo
	listCache      cache.Cache
	listCacheTTL   time.Duration
	metricsManager *metrics.Manager

	// listGeneration is bumped by every mutation; a listing read under an older
	// generation must not be stored in the cache
	listCacheMutex sync.Mutex
	listGeneration uint64
}

// NewHandler creates the news handler. A nil cache or zero TTL disables list caching.
func NewHandler(
	repo newsRepo,
	listCache cache.Cache,
	listCacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		listCache:      listCache,
		listCacheTTL:   listCacheTTL,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers the public listing and the admin-only mutations, which
// are wrapped with the given guard.
func (handler *Handler) SetupRoutes(router *mux.Router, adminGuard func(http.Handler) http.Handler) {
	router.HandleFunc("/news", handler.handleList).Methods("GET").Name("news-list")
	router.Handle("/news", adminGuard(http.HandlerFunc(handler.handleAdd))).Methods("POST").Name("news-add")
	router.Handle("/news/{id}", adminGuard(http.HandlerFunc(handler.handleUpdate))).Methods("PUT").Name("news-update")
	router.Handle("/news/{id}", adminGuard(http.HandlerFunc(handler.handleDelete))).Methods("DELETE").Name("news-delete")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "newsHandler.list")
	defer span.End()

	cached, found, generation := handler.cachedList()
	if found {
		span.SetAttributes(attribute.Bool("cached", true))
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	articles, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list news: %s", err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []Article{}
	}

	articlesJson, err := json.Marshal(articles)
	if err != nil {
		log.Errorf("marshal news list: %s", err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !handler.storeList(articlesJson, generation) {
		span.SetAttributes(attribute.Bool("stale", true))
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, articlesJson)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "newsHandler.add")
	defer span.End()

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("add news, unmarshal json: %s", err)
		span.SetStatus(codes.Error, "decode-body")
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := handler.repo.Add(ctx, req.toArticle())
	if errors.Is(err, ErrMissingFields) {
		span.SetStatus(codes.Error, "missing-fields")
		pkg.WriteJSONError(w, "Missing fields", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("add news: %s", err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.mutated("add")
	log.Tracef("news article %s [%s] added", created.ID, created.Title)

	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "newsHandler.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("update news %s, unmarshal json: %s", id, err)
		span.SetStatus(codes.Error, "decode-body")
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := handler.repo.Update(ctx, id, req.toArticle())
	if errors.Is(err, ErrArticleNotFound) {
		span.SetStatus(codes.Error, "not-found")
		pkg.WriteJSONError(w, "News not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update news %s: %s", id, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.mutated("update")
	log.Tracef("news article %s updated", id)

	pkg.WriteJSONOK(w, updated)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "newsHandler.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("id", id))

	err := handler.repo.Delete(ctx, id)
	if errors.Is(err, ErrArticleNotFound) {
		span.SetStatus(codes.Error, "not-found")
		pkg.WriteJSONError(w, "News not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete news %s: %s", id, err)
		span.SetStatus(codes.Error, err.Error())
		pkg.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.mutated("delete")
	log.Tracef("news article %s deleted", id)

	pkg.WriteJSONOK(w, pkg.SuccessResponse{Success: true})
}

func (handler *Handler) cachingEnabled() bool {
	return handler.listCache != nil && handler.listCacheTTL > 0
}

// cachedList also returns the generation the caller's own repo read belongs to.
func (handler *Handler) cachedList() ([]byte, bool, uint64) {
	handler.listCacheMutex.Lock()
	defer handler.listCacheMutex.Unlock()

	if !handler.cachingEnabled() {
		return nil, false, handler.listGeneration
	}
	cached, found := handler.listCache.Get(listCacheKey)
	return cached, found, handler.listGeneration
}

// storeList caches the listing unless a mutation happened since it was read.
func (handler *Handler) storeList(articlesJson []byte, generation uint64) bool {
	handler.listCacheMutex.Lock()
	defer handler.listCacheMutex.Unlock()

	if !handler.cachingEnabled() {
		return true
	}
	if generation != handler.listGeneration {
		return false
	}
	handler.listCache.Set(listCacheKey, articlesJson, handler.listCacheTTL)
	return true
}

func (handler *Handler) mutated(op string) {
	handler.listCacheMutex.Lock()
	handler.listGeneration++
	if handler.listCache != nil {
		handler.listCache.Clear()
	}
	handler.listCacheMutex.Unlock()

	if handler.metricsManager != nil {
		handler.metricsManager.CounterNewsMutations.With(prometheus.Labels{"op": op}).Inc()
	}
}
