package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/foodie/internal/model"
	"github.com/idilsaglam/foodie/internal/store/jsonstore"
)

// Server serves the catalog from a jsonstore file. Each request reads and
// writes the file under one mutex.
type Server struct {
	mu    sync.Mutex
	store *jsonstore.Store[Database]
	log   *zap.Logger
	token string
	now   func() time.Time
	newID func() string
}

type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

func New(store *jsonstore.Store[Database], opts ...Option) *Server {
	s := &Server{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// EnsureSeeded writes the demo menu when the database has no foods.
func (s *Server) EnsureSeeded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load db: %w", err)
	}
	if len(db.Foods) > 0 {
		return nil
	}
	seed := Seed()
	db.Foods = seed.Foods
	if err := s.store.Save(db); err != nil {
		return fmt.Errorf("seed db: %w", err)
	}
	s.log.Info("seeded database", zap.String("path", s.store.Path()), zap.Int("foods", len(db.Foods)))
	return nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.token != "" {
		r.Use(s.requireToken)
	}

	r.Get("/foods/{id}", s.getFood)
	r.Post("/favorites", s.addFavorite)
	r.Delete("/favorites/{id}", s.removeFavorite)
	r.Post("/orders", s.createOrder)
	return r
}

func (s *Server) getFood(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	db, err := s.store.Load()
	s.mu.Unlock()
	if err != nil {
		s.internal(w, err)
		return
	}
	food, found := db.food(id)
	if !found {
		writeError(w, http.StatusNotFound, "food not found")
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var item model.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if item.ID <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.store.Load()
	if err != nil {
		s.internal(w, err)
		return
	}
	if i := db.favoriteIndex(item.ID); i >= 0 {
		db.Favorites[i] = item
	} else {
		db.Favorites = append(db.Favorites, item)
	}
	if err := s.store.Save(db); err != nil {
		s.internal(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.store.Load()
	if err != nil {
		s.internal(w, err)
		return
	}
	i := db.favoriteIndex(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "favorite not found")
		return
	}
	db.Favorites = append(db.Favorites[:i], db.Favorites[i+1:]...)
	if err := s.store.Save(db); err != nil {
		s.internal(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var o model.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.store.Load()
	if err != nil {
		s.internal(w, err)
		return
	}
	if err := validateOrder(db, o); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stored := StoredOrder{ID: s.newID(), Order: o, CreatedAt: s.now().UTC()}
	db.Orders = append(db.Orders, stored)
	if err := s.store.Save(db); err != nil {
		s.internal(w, err)
		return
	}
	s.log.Info("order accepted",
		zap.String("order_id", stored.ID),
		zap.Int("product_id", o.ProductID),
		zap.Int("quantity", o.Quantity),
		zap.String("total", o.Total.StringFixed(2)))
	writeJSON(w, http.StatusCreated, map[string]string{"id": stored.ID})
}

// validateOrder re-prices the order against the stored menu.
func validateOrder(db Database, o model.Order) error {
	food, ok := db.food(o.ProductID)
	if !ok {
		return fmt.Errorf("unknown product %d", o.ProductID)
	}
	if o.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	priced := make([]model.AddOn, 0, len(o.AddOns))
	for _, sel := range o.AddOns {
		if sel.Quantity < 0 {
			return fmt.Errorf("negative quantity for extra %d", sel.ID)
		}
		var known *model.AddOn
		for i := range food.AddOns {
			if food.AddOns[i].ID == sel.ID {
				known = &food.AddOns[i]
				break
			}
		}
		if known == nil {
			return fmt.Errorf("unknown extra %d", sel.ID)
		}
		priced = append(priced, model.AddOn{ID: sel.ID, UnitPrice: known.UnitPrice, Quantity: sel.Quantity})
	}
	want := model.Total(food.Price, o.Quantity, priced)
	if !want.Equal(o.Total) {
		return fmt.Errorf("total mismatch: expected %s", want.StringFixed(2))
	}
	return nil
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") || strings.TrimSpace(h[7:]) != s.token {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) internal(w http.ResponseWriter, err error) {
	s.log.Error("database error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
