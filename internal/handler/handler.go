package handler

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/engine"
	"tax-engine/internal/model"
)

const (
	pathHealth   = "/healthz"
	pathCompare  = "/v1/tax/compare"
	pathClassify = "/v1/company/classify"
	// regime names follow this prefix, e.g. /v1/tax/prior
	prefixRegime = "/v1/tax/"
)

type Handler struct {
	engine *engine.Engine
	log    *zap.Logger
}

func New(e *engine.Engine, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{engine: e, log: log}
}

// Handle routes a request. It is the fasthttp.RequestHandler of the server.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch {
	case path == pathHealth:
		h.health(ctx)
	case !ctx.IsPost():
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	case path == pathCompare:
		h.compare(ctx)
	case path == pathClassify:
		h.classify(ctx)
	case strings.HasPrefix(path, prefixRegime):
		h.regimeTax(ctx, strings.TrimPrefix(path, prefixRegime))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	h.log.Info("request handled",
		zap.ByteString("method", ctx.Method()),
		zap.String("path", path),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *Handler) health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) compare(ctx *fasthttp.RequestCtx) {
	var req model.TaxComparisonRequest
	if !decode(ctx, &req) {
		return
	}
	resp := h.engine.CompareTax(&req)
	writeJSON(ctx, statusFor(resp.CalculationMetadata.CalculationOutcome), resp)
}

func (h *Handler) regimeTax(ctx *fasthttp.RequestCtx, name string) {
	var req model.RegimeTaxRequest
	if !decode(ctx, &req) {
		return
	}
	resp := h.engine.ComputeTax(name, &req)
	writeJSON(ctx, statusFor(resp.CalculationMetadata.CalculationOutcome), resp)
}

func (h *Handler) classify(ctx *fasthttp.RequestCtx) {
	var req model.CompanyClassificationRequest
	if !decode(ctx, &req) {
		return
	}
	resp := h.engine.ClassifyCompany(&req)
	writeJSON(ctx, statusFor(resp.CalculationMetadata.CalculationOutcome), resp)
}

func decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Request body is required")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// statusFor maps a rejected calculation to 422; its messages explain why.
func statusFor(outcome string) int {
	if outcome == model.OutcomeFailure {
		return fasthttp.StatusUnprocessableEntity
	}
	return fasthttp.StatusOK
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
