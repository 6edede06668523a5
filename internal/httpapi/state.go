package httpapi

import (
	"encoding/json"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/wordle-backend/internal/gamestate"
	"github.com/park285/wordle-backend/pkg/gamedto"
)

// StateHandler serves the game-state API:
//
//	GET  /state/?user_id=&game_id=  current game
//	POST /state/                    start (or reset) a game
//	POST /state/update?guess=       add a guess
type StateHandler struct {
	svc *gamestate.Service
	log *zap.Logger
}

func NewStateHandler(svc *gamestate.Service, logger *zap.Logger) *StateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateHandler{svc: svc, log: logger}
}

func (h *StateHandler) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		healthz(ctx)
	case "/state/":
		switch {
		case ctx.IsGet():
			h.getGame(ctx)
		case ctx.IsPost():
			h.newGame(ctx)
		default:
			methodNotAllowed(ctx)
		}
	case "/state/update":
		if !ctx.IsPost() {
			methodNotAllowed(ctx)
			return
		}
		h.addGuess(ctx)
	default:
		notFoundRoute(ctx)
	}
}

func (h *StateHandler) getGame(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.QueryArgs().Peek("user_id"))
	if userID == "" {
		writeError(ctx, h.log, gamedto.InvalidArgument("user_id query parameter is required"))
		return
	}
	gameID, err := strconv.Atoi(string(ctx.QueryArgs().Peek("game_id")))
	if err != nil {
		writeError(ctx, h.log, gamedto.InvalidArgument("game_id must be an integer"))
		return
	}
	state, err := h.svc.Get(ctx, userID, gameID)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, state)
}

func (h *StateHandler) newGame(ctx *fasthttp.RequestCtx) {
	ref, ok := h.parseRef(ctx)
	if !ok {
		return
	}
	state, err := h.svc.NewGame(ctx, ref.UserID, ref.GameID)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, state)
}

func (h *StateHandler) addGuess(ctx *fasthttp.RequestCtx) {
	guess := string(ctx.QueryArgs().Peek("guess"))
	if guess == "" {
		writeError(ctx, h.log, gamedto.InvalidArgument("guess query parameter is required"))
		return
	}
	ref, ok := h.parseRef(ctx)
	if !ok {
		return
	}
	state, err := h.svc.AddGuess(ctx, ref.UserID, ref.GameID, guess)
	if err != nil {
		writeError(ctx, h.log, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, state)
}

func (h *StateHandler) parseRef(ctx *fasthttp.RequestCtx) (gamedto.GameRef, bool) {
	var ref gamedto.GameRef
	if err := json.Unmarshal(ctx.PostBody(), &ref); err != nil {
		writeError(ctx, h.log, gamedto.InvalidArgument("request body must be JSON with user_id and game_id"))
		return ref, false
	}
	if ref.UserID == "" {
		writeError(ctx, h.log, gamedto.InvalidArgument("user_id is required"))
		return ref, false
	}
	return ref, true
}
