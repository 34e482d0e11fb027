package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"eventdate/internal/batch"
	"eventdate/internal/config"
	"eventdate/internal/interpret"
	appLog "eventdate/internal/log"
	"eventdate/internal/measure"
	"eventdate/internal/model"
)

const (
	// maxBodyBytes caps POST /api/interpret bodies.
	maxBodyBytes = 8 << 20

	interpretCacheTTL  = 5 * time.Minute
	interpretCacheSize = 4096
)

// Server exposes interpretation over HTTP.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	// GET /api/interpret answers, keyed by raw query.
	cacheMu sync.RWMutex
	cache   map[string]cachedInterpretation
}

type cachedInterpretation struct {
	resp      interpretResponse
	updatedAt time.Time
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:   cfg,
		mux:   http.NewServeMux(),
		cache: make(map[string]cachedInterpretation),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="eventdate", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// StartServer serves the API on cfg.Listen until ctx is cancelled, then
// shuts down gracefully.
func StartServer(ctx context.Context, cfg *config.Config) error {
	s := NewServer(cfg)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "web: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "web: shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "web: listen")
	}
	appLog.Info("HTTP server stopped")
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/interpret", s.handleInterpret)
	s.mux.HandleFunc("/api/build", s.handleBuild)
	s.mux.HandleFunc("/api/consistent", s.handleConsistent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// interpretResponse is the JSON shape for GET /api/interpret.
type interpretResponse struct {
	Verbatim string                `json:"verbatim"`
	Result   interpret.EventResult `json:"result"`
	Measures *measuresDTO          `json:"measures,omitempty"`
}

// measuresDTO reports precision facts about a result value.
type measuresDTO struct {
	DurationSeconds int64 `json:"duration_seconds"`
	DayScale        bool  `json:"day_scale"`
	MonthScale      bool  `json:"month_scale"`
	YearScale       bool  `json:"year_scale"`
	DecadeScale     bool  `json:"decade_scale"`
	LeapDays        int   `json:"leap_days"`
	DayOrFiner      bool  `json:"day_or_finer"`
}

// batchResponse is the JSON shape for POST /api/interpret.
type batchResponse struct {
	Records []model.Record                `json:"records"`
	Total   int                           `json:"total"`
	Matched int                           `json:"matched"`
	ByState map[interpret.ResultState]int `json:"by_state"`
}

type batchRequest struct {
	Dates []string `json:"dates"`
}

// handleInterpret interprets one date (GET) or many (POST).
//
// GET /api/interpret?date=5/9/1985&month_first=true&day_precision=1
//
// POST /api/interpret takes either {"dates": [...]} as JSON or plain text
// with one verbatim date per line. Both accept the same query parameters.
func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	opts, err := s.batchOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.interpretOne(w, r, opts)
	case http.MethodPost:
		s.interpretMany(w, r, opts)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) interpretOne(w http.ResponseWriter, r *http.Request, opts batch.Options) {
	date := r.URL.Query().Get("date")
	if strings.TrimSpace(date) == "" {
		writeError(w, http.StatusBadRequest, "missing date parameter")
		return
	}

	key := r.URL.RawQuery
	now := time.Now()
	s.cacheMu.RLock()
	c, ok := s.cache[key]
	s.cacheMu.RUnlock()
	if ok && now.Sub(c.updatedAt) < interpretCacheTTL {
		writeJSON(w, http.StatusOK, c.resp)
		return
	}

	rec := batch.Interpret(model.Verbatim{Source: model.SourceInline, Line: 1, Text: date}, opts)
	resp := interpretResponse{
		Verbatim: date,
		Result:   rec.Result,
		Measures: measuresFor(rec.Result),
	}

	s.cacheMu.Lock()
	if len(s.cache) >= interpretCacheSize {
		// Full: start over.
		s.cache = make(map[string]cachedInterpretation)
	}
	s.cache[key] = cachedInterpretation{resp: resp, updatedAt: now}
	s.cacheMu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) interpretMany(w http.ResponseWriter, r *http.Request, opts batch.Options) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	var items []model.Verbatim
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req batchRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		for i, d := range req.Dates {
			items = append(items, model.Verbatim{Source: model.SourceLine, Line: i + 1, Text: d})
		}
	} else {
		var err error
		if items, err = batch.Scan(body); err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}
	}

	records, err := batch.Normalize(r.Context(), items, opts)
	if err != nil {
		appLog.Error("api interpret: batch failed", err, "items", len(items))
		writeError(w, http.StatusInternalServerError, "interpretation cancelled")
		return
	}

	sum := batch.Summarize(records)
	writeJSON(w, http.StatusOK, batchResponse{
		Records: records,
		Total:   sum.Total,
		Matched: sum.Matched,
		ByState: sum.ByState,
	})
}

// batchOptions applies per-request overrides on top of the server config.
func (s *Server) batchOptions(r *http.Request) (batch.Options, error) {
	opts := batch.Options{
		Interpret: s.cfg.Options(),
		Workers:   s.cfg.Workers,
	}
	q := r.URL.Query()
	if v := q.Get("month_first"); v != "" {
		mf, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Errorf("invalid month_first %q", v)
		}
		opts.Interpret = opts.Interpret.WithMonthFirst(mf)
	}
	if v := q.Get("day_precision"); v != "" {
		dp, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Errorf("invalid day_precision %q", v)
		}
		opts.DayPrecision = dp
	}
	if v := q.Get("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.Errorf("invalid threshold %q", v)
		}
		if n > 0 {
			opts.Interpret.SuspectYearThreshold = n
		}
	}
	return opts, nil
}

func measuresFor(res interpret.EventResult) *measuresDTO {
	if !res.HasValue() {
		return nil
	}
	secs, err := measure.MeasureDurationSeconds(res.Value)
	if err != nil {
		return nil
	}
	return &measuresDTO{
		DurationSeconds: secs,
		DayScale:        measure.SpecificToDayScale(res.Value),
		MonthScale:      measure.SpecificToMonthScale(res.Value),
		YearScale:       measure.SpecificToYearScale(res.Value),
		DecadeScale:     measure.SpecificToDecadeScale(res.Value),
		LeapDays:        measure.CountLeapDays(res.Value),
		DayOrFiner:      measure.HasResolutionDayOrFiner(res.Value),
	}
}

// handleBuild assembles an event date from atomic fields.
//
// GET /api/build?verbatim=&start_day_of_year=&end_day_of_year=&year=&month=&day=
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		value string
		ok    bool
	)
	if q.Has("start") || q.Has("end") {
		value, ok = interpret.BuildFromStartEnd(q.Get("start"), q.Get("end"))
	} else {
		value, ok = interpret.BuildFromAtomicParts(
			q.Get("verbatim"),
			q.Get("start_day_of_year"),
			q.Get("end_day_of_year"),
			q.Get("year"),
			q.Get("month"),
			q.Get("day"),
		)
	}
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no event date could be built")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"event_date": value})
}

// handleConsistent checks an event date against atomic fields.
//
// GET /api/consistent?event_date=&year=&month=&day=[&start_day_of_year=&end_day_of_year=]
func (s *Server) handleConsistent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	eventDate := q.Get("event_date")
	if eventDate == "" {
		writeError(w, http.StatusBadRequest, "missing event_date parameter")
		return
	}

	var ok bool
	if q.Has("start_day_of_year") || q.Has("end_day_of_year") {
		ok = measure.IsConsistentWithDayOfYear(eventDate,
			q.Get("start_day_of_year"), q.Get("end_day_of_year"),
			q.Get("year"), q.Get("month"), q.Get("day"))
	} else {
		ok = measure.IsConsistent(eventDate, q.Get("year"), q.Get("month"), q.Get("day"))
	}
	writeJSON(w, http.StatusOK, map[string]bool{"consistent": ok})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
