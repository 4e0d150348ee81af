package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/adsemenov/calendar-planner-backend/internal/model"
	"github.com/adsemenov/calendar-planner-backend/internal/planner"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	planner        plannerController
	metricsHandler http.Handler
}

type plannerController interface {
	Snapshot() planner.State
	SetDate(t time.Time)
	SetSelectedDate(t time.Time)
	SetView(v planner.ViewMode)
	SetSearchTerm(term string)
	SetShowAllUpcoming(v bool)
	SetViewer(ctx context.Context, userID int64, privileged bool) error
	Refresh(ctx context.Context) error
	AddItem(ctx context.Context, info *model.ItemCreate) (*model.CalendarItem, error)
	UpdateItem(ctx context.Context, id int64, info *model.ItemCreate) (*model.CalendarItem, error)
	DeleteItem(ctx context.Context, id int64) error
	ToggleTaskCompletion(ctx context.Context, id int64) error
	FilteredItems() []*model.CalendarItem
	Upcoming(now time.Time) []*model.CalendarItem
}

func NewApi(
	logger *zap.SugaredLogger,
	plannerController plannerController,
	metricsHandler http.Handler,
) (*Api, error) {
	a := &Api{
		logger:         logger,
		planner:        plannerController,
		metricsHandler: metricsHandler,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/metrics", a.metricsHandler.ServeHTTP)

	r.With(a.viewerCtx).Route("/", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", a.getItemsHandler)
			r.Post("/", a.createItemHandler)
			r.Get("/upcoming", a.getUpcomingHandler)
			r.Put("/{id}", a.updateItemHandler)
			r.Delete("/{id}", a.deleteItemHandler)
			r.Post("/{id}/toggle", a.toggleTaskHandler)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/month", a.getMonthGridHandler)
			r.Get("/year", a.getYearGridHandler)
			r.Get("/slots", a.getTimeSlotsHandler)
		})

		r.Route("/state", func(r chi.Router) {
			r.Get("/", a.getStateHandler)
			r.Post("/refresh", a.refreshStateHandler)
			r.Post("/date", a.setDateHandler)
			r.Post("/selected", a.setSelectedDateHandler)
			r.Post("/view", a.setViewHandler)
			r.Post("/search", a.setSearchHandler)
			r.Post("/upcoming", a.setShowAllUpcomingHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
