package httpapi

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/wordle-backend/internal/domain"
	svcstats "github.com/park285/wordle-backend/internal/service/stats"
	"github.com/park285/wordle-backend/pkg/gamedto"
)

// StatsHandler serves the statistics API:
//
//	GET  /users/                    per-shard user batches
//	POST /users/                    record a finished game
//	POST /users/register            create a user
//	GET  /users/{username}          resolve a username
//	GET  /users/{user_id}/stats     aggregate stats
//	GET  /top10/streaks/all         streak leaderboard
//	GET  /top10/wins                wins leaderboard
type StatsHandler struct {
	svc *svcstats.Service
	log *zap.Logger
}

func NewStatsHandler(svc *svcstats.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, log: logger}
}

func (h *StatsHandler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case "/healthz":
		healthz(ctx)
		return
	case "/users/", "/users":
		switch {
		case ctx.IsGet():
			h.listUsers(ctx)
		case ctx.IsPost():
			h.recordResult(ctx)
		default:
			methodNotAllowed(ctx)
		}
		return
	case "/users/register":
		if !ctx.IsPost() {
			methodNotAllowed(ctx)
			return
		}
		h.registerUser(ctx)
		return
	case "/top10/streaks/all":
		h.leaderboard(ctx, h.svc.Top10Streaks)
		return
	case "/top10/wins":
		h.leaderboard(ctx, h.svc.Top10Wins)
		return
	}

	if rest, ok := strings.CutPrefix(path, "/users/"); ok && ctx.IsGet() {
		parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
		switch {
		case len(parts) == 1 && parts[0] != "":
			h.userByName(ctx, parts[0])
			return
		case len(parts) == 2 && parts[1] == "stats":
			h.userStats(ctx, parts[0])
			return
		}
	}
	notFoundRoute(ctx)
}

func (h *StatsHandler) listUsers(ctx *fasthttp.RequestCtx) {
	pageSize, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("page_size")))
	it := h.svc.ListUsers(pageSize)

	batches := []domain.ShardUsers{}
	for {
		batch, ok, err := it.Next(ctx)
		if err != nil {
			writeError(ctx, h.log, err)
			return
		}
		if !ok {
			break
		}
		batches = append(batches, batch)
	}
	writeJSON(ctx, fasthttp.StatusOK, batches)
}

func (h *StatsHandler) recordResult(ctx *fasthttp.RequestCtx) {
	var payload gamedto.GameResultPayload
	if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
		writeError(ctx, h.log, gamedto.InvalidArgument("request body must be a JSON game result"))
		return
	}
	result := &domain.GameResult{
		UserID:  payload.UserID,
		GameID:  payload.GameID,
		Guesses: payload.Guesses,
		Won:     payload.Won,
	}
	if payload.Finished != "" {
		finished, err := time.Parse("2006-01-02", payload.Finished)
		if err != nil {
			writeError(ctx, h.log, gamedto.InvalidArgument("finished must be a YYYY-MM-DD date"))
			return
		}
		result.Finished = finished
	}
	recorded, err := h.svc.RecordResult(ctx, result)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, gamedto.GameResultPayload{
		UserID:   recorded.UserID,
		GameID:   recorded.GameID,
		Finished: recorded.Finished.Format("2006-01-02"),
		Guesses:  recorded.Guesses,
		Won:      recorded.Won,
	})
}

func (h *StatsHandler) registerUser(ctx *fasthttp.RequestCtx) {
	var payload gamedto.RegisterUserPayload
	if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
		writeError(ctx, h.log, gamedto.InvalidArgument("request body must be JSON with a username"))
		return
	}
	user, err := h.svc.RegisterUser(ctx, payload.Username)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, user)
}

func (h *StatsHandler) userByName(ctx *fasthttp.RequestCtx, username string) {
	user, err := h.svc.UserByName(ctx, username)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, user)
}

func (h *StatsHandler) userStats(ctx *fasthttp.RequestCtx, userID string) {
	stats, err := h.svc.Stats(ctx, userID)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, stats)
}

func (h *StatsHandler) leaderboard(ctx *fasthttp.RequestCtx, top func(context.Context) ([]domain.LeaderboardEntry, error)) {
	if !ctx.IsGet() {
		methodNotAllowed(ctx)
		return
	}
	entries, err := top(ctx)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	pairs := make([]gamedto.ScorePair, 0, len(entries))
	for _, e := range entries {
		pairs = append(pairs, gamedto.ScorePair{UserID: e.UserID, Score: e.Score})
	}
	writeJSON(ctx, fasthttp.StatusOK, pairs)
}
