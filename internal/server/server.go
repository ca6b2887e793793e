package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gostonefire/parcelmap"
	"github.com/gostonefire/parcelmap/errs"
	"github.com/gostonefire/parcelmap/internal/normalize"
	"go.uber.org/zap"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Index - The read only queries served over HTTP
type Index interface {
	LookupBucket(country string) *parcelmap.Bucket
	ListAll(bucket *parcelmap.Bucket, country string) iter.Seq[parcelmap.Parcel]
	ListByCondition(bucket *parcelmap.Bucket, weight int, condition parcelmap.Condition, country string) iter.Seq[parcelmap.Parcel]
	TotalsFor(country string) (parcelmap.Totals, error)
	LightestFor(country string) (parcelmap.Parcel, error)
	HeaviestFor(country string) (parcelmap.Parcel, error)
	Stat(includeDistribution bool) parcelmap.HashMapStat
}

// ParcelResponse - One parcel as JSON
type ParcelResponse struct {
	Destination string  `json:"destination"`
	Weight      int     `json:"weight"`
	Valuation   float64 `json:"valuation"`
}

// ParcelsResponse - Answer to a parcel listing
type ParcelsResponse struct {
	Country   string           `json:"country"`
	Condition string           `json:"condition,omitempty"`
	Weight    *int             `json:"weight,omitempty"`
	Parcels   []ParcelResponse `json:"parcels"`
}

// TotalsResponse - Answer to a totals query
type TotalsResponse struct {
	Country   string  `json:"country"`
	Parcels   int     `json:"parcels"`
	Weight    int     `json:"weight"`
	Valuation float64 `json:"valuation"`
}

// ExtremesResponse - Answer to a lightest and heaviest query
type ExtremesResponse struct {
	Country  string         `json:"country"`
	Lightest ParcelResponse `json:"lightest"`
	Heaviest ParcelResponse `json:"heaviest"`
}

// StatResponse - Answer to a statistics query
type StatResponse struct {
	Records            int64   `json:"records"`
	Buckets            int64   `json:"buckets"`
	UsedBuckets        int64   `json:"used_buckets"`
	CollisionBuckets   int64   `json:"collision_buckets"`
	MaxHeight          int64   `json:"max_height"`
	BucketDistribution []int64 `json:"bucket_distribution,omitempty"`
}

// Server - HTTP front end over a parcel index. Requests are handled one at a time to completion.
type Server struct {
	index Index
	mu    sync.Mutex
	log   *zap.SugaredLogger
}

// New - Returns the router serving index
func New(index Index, log *zap.SugaredLogger) http.Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{index: index, log: log}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(s.serialize)
	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStat)
	r.Route("/countries/{country}", func(r chi.Router) {
		r.Get("/parcels", s.handleParcels)
		r.Get("/totals", s.handleTotals)
		r.Get("/extremes", s.handleExtremes)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleParcels(w http.ResponseWriter, r *http.Request) {
	country, ok := s.country(w, r)
	if !ok {
		return
	}

	res := ParcelsResponse{Country: country, Parcels: []ParcelResponse{}}
	bucket := s.index.LookupBucket(country)
	seq := s.index.ListAll(bucket, country)

	q := r.URL.Query()
	if cond := q.Get("cond"); cond != "" {
		var condition parcelmap.Condition
		switch strings.ToLower(cond) {
		case parcelmap.Higher.String():
			condition = parcelmap.Higher
		case parcelmap.Lower.String():
			condition = parcelmap.Lower
		default:
			writeErrorJSON(w, http.StatusBadRequest, "invalid_condition", fmt.Sprintf("cond must be %s or %s", parcelmap.Higher, parcelmap.Lower))
			return
		}

		weight, err := strconv.Atoi(q.Get("weight"))
		if err != nil {
			writeErrorJSON(w, http.StatusBadRequest, "invalid_weight", "weight must be a whole number")
			return
		}
		res.Condition = condition.String()
		res.Weight = &weight
		seq = s.index.ListByCondition(bucket, weight, condition, country)
	}

	for p := range seq {
		res.Parcels = append(res.Parcels, toParcelResponse(p))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	country, ok := s.country(w, r)
	if !ok {
		return
	}

	totals, err := s.index.TotalsFor(country)
	if err != nil {
		s.writeFindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TotalsResponse{
		Country:   country,
		Parcels:   totals.Parcels,
		Weight:    totals.Weight,
		Valuation: totals.Valuation,
	})
}

func (s *Server) handleExtremes(w http.ResponseWriter, r *http.Request) {
	country, ok := s.country(w, r)
	if !ok {
		return
	}

	lightest, err := s.index.LightestFor(country)
	if err != nil {
		s.writeFindError(w, err)
		return
	}
	heaviest, err := s.index.HeaviestFor(country)
	if err != nil {
		s.writeFindError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExtremesResponse{
		Country:  country,
		Lightest: toParcelResponse(lightest),
		Heaviest: toParcelResponse(heaviest),
	})
}

func (s *Server) handleStat(w http.ResponseWriter, r *http.Request) {
	distribution, _ := strconv.ParseBool(r.URL.Query().Get("distribution"))
	stat := s.index.Stat(distribution)
	writeJSON(w, http.StatusOK, StatResponse{
		Records:            stat.Records,
		Buckets:            stat.Buckets,
		UsedBuckets:        stat.UsedBuckets,
		CollisionBuckets:   stat.CollisionBuckets,
		MaxHeight:          stat.MaxHeight,
		BucketDistribution: stat.BucketDistribution,
	})
}

// country - Validates the country path parameter, writing a 400 answer if it is rejected
func (s *Server) country(w http.ResponseWriter, r *http.Request) (country string, ok bool) {
	country, err := normalize.Country(chi.URLParam(r, "country"), normalize.MaxCountryLength)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_country", err.Error())
		return
	}

	return country, true
}

// writeFindError - Maps a query error to 404 for unknown countries and 500 for anything else
func (s *Server) writeFindError(w http.ResponseWriter, err error) {
	if errors.Is(err, errs.NoRecordFound{}) {
		writeErrorJSON(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	s.log.Errorw("query failed", "error", err)
	writeErrorJSON(w, http.StatusInternalServerError, "internal", "query failed")
}

// serialize - Lets one request at a time through so the index never sees concurrent calls
func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// accessLog - Logs every request with its status and duration
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", w.Header().Get("X-Request-ID"),
		)
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func toParcelResponse(p parcelmap.Parcel) ParcelResponse {
	return ParcelResponse{Destination: p.Destination, Weight: p.Weight, Valuation: p.Valuation}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
