package httpapi

import (
	"encoding/json"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"

	"github.com/park285/wordle-backend/internal/domain"
	"github.com/park285/wordle-backend/internal/gamestate"
)

func newStateHandler(t *testing.T) *StateHandler {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStateHandler(gamestate.New(gamestate.NewStore(rdb), nil), nil)
}

func doRequest(t *testing.T, handler fasthttp.RequestHandler, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	handler(ctx)
	return ctx
}

func TestStateLifecycleOverHTTP(t *testing.T) {
	h := newStateHandler(t)

	ctx := doRequest(t, h.Handle, fasthttp.MethodPost, "http://test/state/",
		`{"user_id":"u1","game_id":20260831}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("POST /state/ status = %d", ctx.Response.StatusCode())
	}
	var created domain.GameState
	if err := json.Unmarshal(ctx.Response.Body(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.GuessesLeft != 6 || created.Status != domain.StatusNew {
		t.Fatalf("unexpected created state: %+v", created)
	}

	ctx = doRequest(t, h.Handle, fasthttp.MethodPost, "http://test/state/update?guess=crane",
		`{"user_id":"u1","game_id":20260831}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("POST /state/update status = %d body=%s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var updated domain.GameState
	if err := json.Unmarshal(ctx.Response.Body(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.GuessesLeft != 5 || updated.WordsGuessed[0] != "crane" {
		t.Fatalf("unexpected updated state: %+v", updated)
	}

	ctx = doRequest(t, h.Handle, fasthttp.MethodGet,
		"http://test/state/?user_id=u1&game_id=20260831", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("GET /state/ status = %d", ctx.Response.StatusCode())
	}
}

func TestStateMissingGameIs404(t *testing.T) {
	h := newStateHandler(t)
	ctx := doRequest(t, h.Handle, fasthttp.MethodGet,
		"http://test/state/?user_id=ghost&game_id=1", "")
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", ctx.Response.StatusCode())
	}
}

func TestStateBadRequests(t *testing.T) {
	h := newStateHandler(t)

	// missing game_id
	ctx := doRequest(t, h.Handle, fasthttp.MethodGet, "http://test/state/?user_id=u1", "")
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("missing game_id: status = %d, want 400", ctx.Response.StatusCode())
	}

	// malformed body
	ctx = doRequest(t, h.Handle, fasthttp.MethodPost, "http://test/state/", "not json")
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("bad body: status = %d, want 400", ctx.Response.StatusCode())
	}

	// exhausted game
	doRequest(t, h.Handle, fasthttp.MethodPost, "http://test/state/", `{"user_id":"u2","game_id":1}`)
	for i := 0; i < 6; i++ {
		doRequest(t, h.Handle, fasthttp.MethodPost, "http://test/state/update?guess=word",
			`{"user_id":"u2","game_id":1}`)
	}
	ctx = doRequest(t, h.Handle, fasthttp.MethodPost, "http://test/state/update?guess=word",
		`{"user_id":"u2","game_id":1}`)
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("exhausted game: status = %d, want 400", ctx.Response.StatusCode())
	}
}
