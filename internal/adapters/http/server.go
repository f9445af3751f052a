package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/chaingen/internal/logging"
	"github.com/aretw0/chaingen/internal/render"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is the version of the JSON API.
const APIVersion = "0.1.0"

// Generator defines the subset of the chain generator the API needs.
type Generator interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Result, error)
	PackagePath(projectName string) string
}

// DefaultMaxChainLength bounds chain_length for requests arriving over HTTP.
const DefaultMaxChainLength = domain.MaxAlignedChainLength

// Server exposes a Generator over HTTP.
type Server struct {
	Generator Generator
	Version   string
	Metrics   http.Handler
	Logger    *slog.Logger
	// MaxChainLength caps chain_length on both endpoints regardless of the
	// generator's policy. Zero means DefaultMaxChainLength.
	MaxChainLength int
}

// PlanFile is a planned file in a JSON response.
type PlanFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// PlanResponse is the body of GET /v1/packages/plan.
type PlanResponse struct {
	Request     domain.Request `json:"request"`
	PackagePath string         `json:"package_path"`
	Files       []PlanFile     `json:"files"`
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.MaxChainLength <= 0 {
		s.MaxChainLength = DefaultMaxChainLength
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/v1/packages", func(r chi.Router) {
		r.Post("/", s.CreatePackage)
		r.Get("/plan", s.GetPlan)
	})
	return r
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "chaingen-http",
		"version":     strings.TrimSpace(s.Version),
		"api_version": APIVersion,
	})
}

// CreatePackage handles POST /v1/packages.
// Absent fields take the command line defaults. Generations on one path are
// serialized by the generator's locker; the request context bounds the wait.
func (s *Server) CreatePackage(w http.ResponseWriter, r *http.Request) {
	req := domain.DefaultRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreatePackage: Invalid request body", "error", err)
		return
	}
	if err := s.checkChainLength(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("CreatePackage: chain length out of range", "chain_length", req.ChainLength)
		return
	}

	res, err := s.Generator.Generate(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		http.Error(w, err.Error(), status)
		s.Logger.Error("CreatePackage failed", "project", req.ProjectName, "status", status, "error", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GetPlan handles GET /v1/packages/plan. It never touches disk.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(domain.PolicyLenient); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.checkChainLength(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := render.Files(req)
	resp := PlanResponse{
		Request:     req,
		PackagePath: s.Generator.PackagePath(req.ProjectName),
		Files:       make([]PlanFile, 0, len(files)),
	}
	for _, f := range files {
		resp.Files = append(resp.Files, PlanFile{Name: f.Name, Content: string(f.Content)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestFromQuery(r *http.Request) (domain.Request, error) {
	req := domain.DefaultRequest()
	q := r.URL.Query()
	if v := q.Get("project_name"); v != "" {
		req.ProjectName = v
	}
	for key, dst := range map[string]*int{
		"chain_length":    &req.ChainLength,
		"recursion_limit": &req.RecursionLimit,
	} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, errors.New("invalid " + key + ": " + v)
		}
		*dst = n
	}
	return req, nil
}

// checkChainLength rejects negative chains and chains above s.MaxChainLength.
func (s *Server) checkChainLength(req domain.Request) error {
	if req.ChainLength < 0 {
		return fmt.Errorf("%w: chain_length must not be negative, got %d", domain.ErrChainTooShort, req.ChainLength)
	}
	if req.ChainLength > s.MaxChainLength {
		return fmt.Errorf("%w: chain_length %d exceeds the server limit of %d", domain.ErrChainTooLong, req.ChainLength, s.MaxChainLength)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidProjectName),
		errors.Is(err, domain.ErrChainTooShort),
		errors.Is(err, domain.ErrChainTooLong),
		errors.Is(err, domain.ErrInvalidRecursionLimit):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
