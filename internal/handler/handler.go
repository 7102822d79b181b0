// Package handler serves the HTTP API over fasthttp
package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"easywealth/internal/advisor"
	"easywealth/internal/engine"
	perr "easywealth/internal/platform/errors"
	"easywealth/internal/platform/logger"
	"easywealth/internal/projection"
	"easywealth/internal/schemeregistry"
	"easywealth/internal/session"
)

const headerRequestID = "X-Request-ID"

type Deps struct {
	Engine   *engine.Engine
	Sessions *session.Store
	Advisor  *advisor.Service
	Schemes  *schemeregistry.Catalogue
	Bounds   projection.Bounds
}

type Handler struct {
	engine   *engine.Engine
	sessions *session.Store
	advisor  *advisor.Service
	schemes  *schemeregistry.Catalogue
	bounds   projection.Bounds
}

func New(d Deps) *Handler {
	return &Handler{
		engine:   d.Engine,
		sessions: d.Sessions,
		advisor:  d.Advisor,
		schemes:  d.Schemes,
		bounds:   d.Bounds,
	}
}

// Serve is the fasthttp.RequestHandler for the whole API
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	reqID := string(ctx.Request.Header.Peek(headerRequestID))
	if reqID == "" {
		reqID = uuid.NewString()
	}
	ctx.Response.Header.Set(headerRequestID, reqID)
	ctx.SetUserValue("request_id", reqID)

	func() {
		defer func() {
			if r := recover(); r != nil {
				ctx.Response.Reset()
				ctx.Response.Header.Set(headerRequestID, reqID)
				writeError(ctx, fmt.Errorf("panic serving %s: %v", ctx.Path(), r))
			}
		}()
		h.route(ctx)
	}()

	logger.C(logger.WithRequest(ctx, reqID)).Debug().
		Str("method", string(ctx.Method())).
		Str("path", string(ctx.Path())).
		Int("status", ctx.Response.StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request served")
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	path := strings.Trim(string(ctx.Path()), "/")
	parts := strings.Split(path, "/")
	method := string(ctx.Method())

	switch {
	case path == "healthz":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodGet: h.health})
	case path == "api/projections/sip":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodPost: h.HandleSIP})
	case path == "api/projections/fire":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodPost: h.HandleFire})
	case path == "api/schemes":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodGet: h.HandleSchemes})
	case path == "api/schemes/recommended":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodGet: h.HandleRecommended})
	case path == "api/sessions":
		allow(ctx, method, map[string]fasthttp.RequestHandler{
			fasthttp.MethodPost: h.HandleCreateSession,
			fasthttp.MethodGet:  h.HandleListSessions,
		})
	case len(parts) >= 3 && parts[0] == "api" && parts[1] == "sessions":
		h.routeSession(ctx, method, parts[2:])
	default:
		writeError(ctx, perr.NotFoundf("no route for %s", string(ctx.Path())))
	}
}

func (h *Handler) routeSession(ctx *fasthttp.RequestCtx, method string, parts []string) {
	ctx.SetUserValue("session_id", parts[0])
	if len(parts) == 1 {
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodGet: h.HandleDashboard})
		return
	}
	if len(parts) > 2 {
		writeError(ctx, perr.NotFoundf("no route for %s", string(ctx.Path())))
		return
	}
	switch parts[1] {
	case "calculations":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodPost: h.HandleCalculation})
	case "chat":
		allow(ctx, method, map[string]fasthttp.RequestHandler{
			fasthttp.MethodGet:  h.HandleTranscript,
			fasthttp.MethodPost: h.HandleChat,
		})
	case "advice":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodPost: h.HandleAdvice})
	case "profile":
		allow(ctx, method, map[string]fasthttp.RequestHandler{fasthttp.MethodPut: h.HandleProfile})
	default:
		writeError(ctx, perr.NotFoundf("no route for %s", string(ctx.Path())))
	}
}

func allow(ctx *fasthttp.RequestCtx, method string, handlers map[string]fasthttp.RequestHandler) {
	if fn, ok := handlers[method]; ok {
		fn(ctx)
		return
	}
	writeError(ctx, perr.Newf(perr.ErrorCodeMethodNotAllowed, "method %s not allowed", method))
}

func (h *Handler) health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

// reqContext carries the request id into service calls
func reqContext(ctx *fasthttp.RequestCtx) context.Context {
	reqID, _ := ctx.UserValue("request_id").(string)
	return logger.WithRequest(ctx, reqID)
}

func sessionID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("session_id").(string)
	return id
}

func decodeBody(ctx *fasthttp.RequestCtx, v any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return perr.JSONErrf("request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "invalid request body: "+err.Error())
	}
	return nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, err error) {
	w := perr.ToWire(err)
	if w.Status >= fasthttp.StatusInternalServerError {
		logger.C(reqContext(ctx)).Error().Err(err).Msg("request failed")
	}
	b, _ := json.Marshal(w)
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(w.Status)
	ctx.SetBody(b)
}
