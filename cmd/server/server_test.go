package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	nacolog "github.com/baditaflorin/go_naco/internal/adapters/logger"
)

func TestMain(m *testing.M) {
	var err error
	logger, err = l.NewStandardFactory().CreateLogger(nacolog.DefaultConfig(nacolog.Options{Output: io.Discard}))
	if err != nil {
		panic(err)
	}
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

func doRequest(t *testing.T, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	requestHandler(&ctx)
	return &ctx
}

func decode(t *testing.T, ctx *fasthttp.RequestCtx, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), v))
}

func TestHealth(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodGet, "/health", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp map[string]string
	decode(t, ctx, &resp)
	assert.Equal(t, "ok", resp["status"])
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantCase string
	}{
		{"default case", `{"text":"O'Brien [Ed.]"}`, "OBRIEN ED", "upper"},
		{"lower case", `{"text":"Müller & Söhne","case":"lower"}`, "muller & sohne", "lower"},
		{"unknown case is upper", `{"text":"café","case":"title"}`, "CAFE", "upper"},
		{"null text", `{"text":null}`, "", "upper"},
		{"missing text", `{}`, "", "upper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := doRequest(t, fasthttp.MethodPost, "/normalize", tt.body)
			require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

			var resp NormalizeResponse
			decode(t, ctx, &resp)
			assert.Equal(t, tt.wantText, resp.Normalized)
			assert.Equal(t, tt.wantCase, resp.Case)
		})
	}
}

func TestBatchEndpoint(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodPost, "/normalize/batch",
		`{"texts":["hello, world!", null, "  multiple   spaces  "],"case":"lower"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp BatchResponse
	decode(t, ctx, &resp)
	assert.Equal(t, []string{"hello world", "", "multiple spaces"}, resp.Normalized)
	assert.Equal(t, "lower", resp.Case)
}

func TestStreamEndpoint(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodPost, "/normalize/stream?case=lower",
		"Brontë, Charlotte\r\n\nO'Brien [Ed.]")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "bronte charlotte\n\nobrien ed\n", string(ctx.Response.Body()))
	assert.Equal(t, "3", string(ctx.Response.Header.Peek("X-Lines-Processed")))
}

func TestStreamEndpointLatin1(t *testing.T) {
	ctx := doRequest(t, fasthttp.MethodPost, "/normalize/stream?encoding=iso-8859-1", "G\xf6del\n")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "GODEL\n", string(ctx.Response.Body()))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		uri    string
		body   string
		status int
	}{
		{"unknown path", fasthttp.MethodGet, "/compare", "", fasthttp.StatusNotFound},
		{"get normalize", fasthttp.MethodGet, "/normalize", "", fasthttp.StatusMethodNotAllowed},
		{"post health", fasthttp.MethodPost, "/health", "{}", fasthttp.StatusMethodNotAllowed},
		{"bad json", fasthttp.MethodPost, "/normalize", "{", fasthttp.StatusBadRequest},
		{"bad batch", fasthttp.MethodPost, "/normalize/batch", `{"texts":"x"}`, fasthttp.StatusBadRequest},
		{"bad encoding", fasthttp.MethodPost, "/normalize/stream?encoding=nope", "x", fasthttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := doRequest(t, tt.method, tt.uri, tt.body)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())

			var resp ErrorResponse
			decode(t, ctx, &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
port: 9090
read_timeout: 5s
default_case: lower
warm_up: false
stream:
  parallel: false
  batch_size: 64
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, "lower", cfg.DefaultCase)
	assert.False(t, cfg.WarmUp)
	assert.False(t, cfg.Stream.Parallel)
	assert.Equal(t, 64, cfg.Stream.BatchSize)
	assert.Equal(t, DefaultStreamTimeout, cfg.Stream.Timeout)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("default_case: Lower\n"))
	assert.ErrorIs(t, err, ErrInvalidCase)

	_, err = ParseConfig([]byte("port: [1, 2]\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFlagsOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\ndefault_case: lower\n"), 0o644))

	cfg, err := parseFlags([]string{"-config", path, "-case", "upper"})
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "upper", cfg.DefaultCase)

	cfg, err = parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = parseFlags([]string{"-case", "title"})
	assert.ErrorIs(t, err, ErrInvalidCase)
}
