package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	naco "github.com/baditaflorin/go_naco"
	"github.com/baditaflorin/go_naco/internal/core/domain"
	"github.com/baditaflorin/go_naco/pkg/streaming"
)

// NormalizeRequest is the body of POST /normalize. A null or missing text
// normalizes to the empty string.
type NormalizeRequest struct {
	Text *string `json:"text"`
	Case string  `json:"case,omitempty"`
}

// NormalizeResponse is the reply to POST /normalize
type NormalizeResponse struct {
	Normalized string `json:"normalized"`
	Case       string `json:"case"`
}

// BatchRequest is the body of POST /normalize/batch
type BatchRequest struct {
	Texts []*string `json:"texts"`
	Case  string    `json:"case,omitempty"`
}

// BatchResponse is the reply to POST /normalize/batch, in request order
type BatchResponse struct {
	Normalized []string `json:"normalized"`
	Case       string   `json:"case"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/normalize":
		handleNormalize(ctx)
	case "/normalize/batch":
		handleBatch(ctx)
	case "/normalize/stream":
		handleStream(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() && !ctx.IsHead() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleNormalize normalizes a single heading
func handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	opts := requestOptions(req.Case)
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, NormalizeResponse{
		Normalized: naco.NormalizePtr(req.Text, opts),
		Case:       domain.ParseCaseMode(opts.Case).String(),
	})
}

// handleBatch normalizes a list of headings with one case mode
func handleBatch(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	opts := requestOptions(req.Case)
	normalized := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		normalized[i] = naco.NormalizePtr(text, opts)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, BatchResponse{
		Normalized: normalized,
		Case:       domain.ParseCaseMode(opts.Case).String(),
	})
}

// handleStream normalizes a text/plain body, one heading per line. The
// case and the input encoding come from the query string.
func handleStream(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	args := ctx.QueryArgs()
	opts := requestOptions(string(args.Peek("case")))

	sn, err := newStreamNormalizer(opts.Case, string(args.Peek("encoding")))
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	c, cancel := context.WithTimeout(context.Background(), serverConfig.Stream.Timeout)
	defer cancel()

	var out bytes.Buffer
	result, err := sn.NormalizeStream(c, bytes.NewReader(ctx.PostBody()), &out)
	if err != nil {
		logger.Error("Stream normalization failed", "error", err, "lines_read", result.LinesRead)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Stream normalization failed")
		return
	}

	ctx.Response.Header.Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Response.Header.Set("X-Lines-Processed", strconv.Itoa(result.LinesWritten))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(out.Bytes())
}

// requestOptions applies the server default when a request names no case.
func requestOptions(c string) *naco.Options {
	if c == "" {
		c = serverConfig.DefaultCase
	}
	return &naco.Options{Case: c}
}

// streamAdapter lets the warm-up manager drive a stream normalizer.
type streamAdapter struct {
	n *streaming.Normalizer
}

func (a streamAdapter) ProcessStream(ctx context.Context, r io.Reader, w io.Writer) (domain.StreamStats, error) {
	res, err := a.n.NormalizeStream(ctx, r, w)
	return domain.StreamStats{
		LinesRead:      res.LinesRead,
		LinesWritten:   res.LinesWritten,
		BytesProcessed: res.BytesProcessed,
	}, err
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON response", "error", err)
		writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
