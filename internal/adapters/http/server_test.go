package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/chaingen/internal/adapters/memory"
	"github.com/aretw0/chaingen/internal/generator"
	"github.com/aretw0/chaingen/internal/metrics"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, opts ...generator.Option) (*Server, string) {
	t.Helper()
	src := t.TempDir()
	m := metrics.New()
	opts = append([]generator.Option{generator.WithMetrics(m), generator.WithLocker(memory.NewLocker(), time.Second)}, opts...)
	return &Server{
		Generator: generator.New(src, opts...),
		Version:   "0.1.0\n",
		Metrics:   m.Handler(),
	}, src
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rr := do(t, NewHandler(s), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	s, _ := newTestServer(t)
	rr := do(t, NewHandler(s), http.MethodGet, "/info", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "chaingen-http", resp["app"])
	assert.Equal(t, "0.1.0", resp["version"])
	assert.Equal(t, APIVersion, resp["api_version"])
}

func TestCreatePackage(t *testing.T) {
	s, src := newTestServer(t)
	h := NewHandler(s)

	rr := do(t, h, http.MethodPost, "/v1/packages", []byte(`{"project_name":"api","chain_length":4,"recursion_limit":50}`))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var res domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 4, res.ModulesWritten)
	assert.Equal(t, filepath.Join(src, "api"), res.PackagePath)

	entries, err := os.ReadDir(res.PackagePath)
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	metricsBody := do(t, h, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, metricsBody, "chaingen_modules_written_total 4")
	assert.Contains(t, metricsBody, `chaingen_generations_total{outcome="success"} 1`)
}

func TestCreatePackage_Defaults(t *testing.T) {
	s, _ := newTestServer(t)
	rr := do(t, NewHandler(s), http.MethodPost, "/v1/packages", []byte(`{"chain_length":2}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "demo", res.Request.ProjectName)
	assert.Equal(t, 1000, res.Request.RecursionLimit)
}

func TestCreatePackage_Errors(t *testing.T) {
	s, _ := newTestServer(t, generator.WithPolicy(domain.PolicyStrict))
	h := NewHandler(s)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"empty chain under strict", `{"chain_length":0}`, http.StatusBadRequest},
		{"path-like name", `{"project_name":"../etc"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, h, http.MethodPost, "/v1/packages", []byte(tt.body)).Code)
		})
	}
}

func TestGetPlan(t *testing.T) {
	s, src := newTestServer(t)
	rr := do(t, NewHandler(s), http.MethodGet, "/v1/packages/plan?project_name=p&chain_length=2&recursion_limit=9", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, filepath.Join(src, "p"), resp.PackagePath)
	require.Len(t, resp.Files, 4)
	assert.Equal(t, "mod_001.py", resp.Files[2].Name)
	assert.Equal(t, "from . import mod_002", resp.Files[2].Content)
	assert.Contains(t, resp.Files[1].Content, "sys.setrecursionlimit(9)")

	// Plan never writes.
	assert.NoDirExists(t, filepath.Join(src, "p"))
}

func TestGetPlan_BadQuery(t *testing.T) {
	s, _ := newTestServer(t)
	rr := do(t, NewHandler(s), http.MethodGet, "/v1/packages/plan?chain_length=many", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChainLengthLimit(t *testing.T) {
	s, src := newTestServer(t)
	h := NewHandler(s)

	t.Run("plan over default limit", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/v1/packages/plan?chain_length=2000000", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "exceeds the server limit of 999")
	})

	t.Run("plan with negative length", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/v1/packages/plan?chain_length=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("create over default limit", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/v1/packages", []byte(`{"project_name":"huge","chain_length":2000000}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NoDirExists(t, filepath.Join(src, "huge"))
	})

	t.Run("create with negative length", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/v1/packages", []byte(`{"project_name":"neg","chain_length":-3}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.NoDirExists(t, filepath.Join(src, "neg"))
	})

	t.Run("at the limit", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/v1/packages/plan?chain_length=999", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var resp PlanResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Files, 1001)
	})
}

func TestChainLengthLimit_Custom(t *testing.T) {
	s, src := newTestServer(t)
	s.MaxChainLength = 3
	h := NewHandler(s)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/v1/packages/plan?chain_length=4", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/packages", []byte(`{"project_name":"four","chain_length":4}`)).Code)
	assert.NoDirExists(t, filepath.Join(src, "four"))

	rr := do(t, h, http.MethodPost, "/v1/packages", []byte(`{"project_name":"three","chain_length":3}`))
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk full")))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrChainTooLong))
}
