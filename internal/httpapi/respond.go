// Package httpapi exposes the two services over fasthttp with JSON bodies.
// Handlers only parse, delegate and map errors; every decision lives in the
// service layer.
package httpapi

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/wordle-backend/pkg/gamedto"
)

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	raw, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"detail":"failed to encode response"}`)
		return
	}
	ctx.SetBody(raw)
}

// writeError maps the error taxonomy onto HTTP statuses:
// invalid_argument/invalid_state 400, not_found 404, conflict 409,
// anything else (store failures) 500 with a generic message.
func writeError(ctx *fasthttp.RequestCtx, log *zap.Logger, err error) {
	code := gamedto.CodeOf(err)
	status := fasthttp.StatusInternalServerError
	detail := err.Error()
	switch code {
	case gamedto.CodeInvalidArgument, gamedto.CodeInvalidState:
		status = fasthttp.StatusBadRequest
	case gamedto.CodeNotFound:
		status = fasthttp.StatusNotFound
	case gamedto.CodeConflict:
		status = fasthttp.StatusConflict
	default:
		detail = "internal server error"
		log.Error("request failed",
			zap.ByteString("path", ctx.Path()),
			zap.Error(err))
	}
	writeJSON(ctx, status, gamedto.ErrorBody{Detail: detail})
}

func notFoundRoute(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusNotFound, gamedto.ErrorBody{Detail: "Not Found"})
}

func methodNotAllowed(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusMethodNotAllowed, gamedto.ErrorBody{Detail: "Method Not Allowed"})
}

func healthz(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}
