// Package daemon provides the payplan HTTP API: submissions, the shared
// record log, and a live event stream.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/history"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/model"
	"github.com/theirongolddev/payplan/internal/planner"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Event types.
const (
	EventSubmission = "submission"
	EventRejection  = "rejection"
	EventStatus     = "status"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	Journal      bool
}

// Event is emitted for every submission the server handles.
type Event struct {
	ID        int64                  `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Record    *planner.RecordView    `json:"record,omitempty"`
	Breakdown *planner.BreakdownView `json:"breakdown,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Status    *Status                `json:"status,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastSubmitAt    time.Time `json:"last_submit_at,omitzero"`
	Submissions     int64     `json:"submissions"`
	Rejections      int64     `json:"rejections"`
	Records         int       `json:"records"`
	Journal         bool      `json:"journal"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// TierInfo is one entry of /v1/tiers.
type TierInfo struct {
	Tier        string `json:"tier"`
	Spend       string `json:"spend"`
	Save        string `json:"save"`
	Invest      string `json:"invest"`
	Description string `json:"description"`
}

// Service provides the HTTP API over a shared record log.
type Service struct {
	cfg     Config
	records *history.Locked
	planner *planner.Planner
	logger  zerolog.Logger

	mu           sync.RWMutex
	startedAt    time.Time
	lastSubmitAt time.Time
	submissions  int64
	rejections   int64
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service serving records. p must record into the same log.
func New(cfg Config, records *history.Locked, p *planner.Planner, logger zerolog.Logger) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}

	return &Service{
		cfg:       cfg,
		records:   records,
		planner:   p,
		logger:    logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the gin engine with every route registered.
func (s *Service) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	v1.GET("/tiers", s.handleTiers)
	v1.POST("/plans", s.handlePlan)
	v1.GET("/records", s.handleRecords)
	v1.GET("/records/search", s.handleSearch)
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)
	return r
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		// Streams end when ctx does, so Shutdown does not wait on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("payplan server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info().Msg("payplan server shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("payplan http server: %w", err)
	}
}

func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *Service) submit(ctx context.Context, f intake.Form) (planner.Result, error) {
	res, err := s.planner.Submit(ctx, f)

	ev := Event{Timestamp: time.Now()}
	if err != nil {
		ev.Type = EventRejection
		ev.Message = planner.UserMessage(err)
	} else {
		rv := planner.NewRecordView(res.Record)
		bv := planner.NewBreakdownView(res.Breakdown)
		ev.Type = EventSubmission
		ev.Record = &rv
		ev.Breakdown = &bv
	}
	s.publishEvent(ev)
	return res, err
}

// publishEvent numbers ev, counts it, appends it to the ring and fans it out
// in one critical section, so IDs in the ring and on every stream are
// strictly increasing.
func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	ev.ID = s.nextEventID
	switch ev.Type {
	case EventSubmission:
		s.submissions++
		s.lastSubmitAt = ev.Timestamp
	case EventRejection:
		s.rejections++
	}

	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Service) snapshotStatus() Status {
	size := s.records.Size()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastSubmitAt:    s.lastSubmitAt,
		Submissions:     s.submissions,
		Rejections:      s.rejections,
		Records:         size,
		Journal:         s.cfg.Journal,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleTiers(c *gin.Context) {
	tiers := make([]TierInfo, 0, len(model.RiskTiers))
	for _, t := range model.RiskTiers {
		split, err := allocation.Lookup(t)
		if err != nil {
			continue
		}
		tiers = append(tiers, TierInfo{
			Tier:        string(t),
			Spend:       split.Spend.StringFixed(2),
			Save:        split.Save.StringFixed(2),
			Invest:      split.Invest.StringFixed(2),
			Description: allocation.DescribeTier(t),
		})
	}
	c.JSON(http.StatusOK, tiers)
}

func (s *Service) handlePlan(c *gin.Context) {
	var f intake.Form
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.submit(c.Request.Context(), f)
	if err != nil {
		if planner.IsUserError(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": planner.UserMessage(err), "detail": err.Error()})
			return
		}
		s.logger.Error().Err(err).Msg("submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": planner.UserMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, res.View())
}

func (s *Service) handleRecords(c *gin.Context) {
	snap := s.records.Snapshot()
	out := make([]planner.RecordView, 0, len(snap))
	for _, r := range snap {
		out = append(out, planner.NewRecordView(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Service) handleSearch(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}

	rec, ok := s.records.Search(year, month)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no record for %04d-%02d", year, month)})
		return
	}
	c.JSON(http.StatusOK, planner.NewRecordView(rec))
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(c *gin.Context) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, events)
}

func (s *Service) handleStream(c *gin.Context) {
	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Send current status immediately.
	status := s.snapshotStatus()
	c.SSEvent(EventStatus, Event{Type: EventStatus, Timestamp: time.Now(), Status: &status})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-ch:
			c.SSEvent(ev.Type, ev)
			return true
		}
	})
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
