package gamestate

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/park285/wordle-backend/internal/domain"
	"github.com/park285/wordle-backend/pkg/gamedto"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(NewStore(rdb), nil)
}

func TestNewGameThenGet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.NewGame(ctx, "u1", 20260831)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if created.Status != domain.StatusNew || created.GuessesLeft != 6 || len(created.WordsGuessed) != 0 {
		t.Fatalf("unexpected fresh state: %+v", created)
	}

	got, err := svc.Get(ctx, "u1", 20260831)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusNew || got.GuessesLeft != 6 || len(got.WordsGuessed) != 0 {
		t.Fatalf("unexpected persisted state: %+v", got)
	}
}

func TestGetMissingGameNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), "u1", 20260831)
	if gamedto.CodeOf(err) != gamedto.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestAddGuessExhaustsAttempts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.NewGame(ctx, "u1", 1); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	var state *domain.GameState
	var err error
	for i := 1; i <= 6; i++ {
		state, err = svc.AddGuess(ctx, "u1", 1, fmt.Sprintf("word%d", i))
		if err != nil {
			t.Fatalf("AddGuess #%d: %v", i, err)
		}
		if state.GuessesLeft != 6-i {
			t.Fatalf("guesses_left = %d after %d guesses", state.GuessesLeft, i)
		}
	}
	if state.Status != domain.StatusFinished {
		t.Fatalf("status = %s after final guess, want finished", state.Status)
	}
	if len(state.WordsGuessed) != 6 || state.WordsGuessed[0] != "word1" {
		t.Fatalf("guess order lost: %v", state.WordsGuessed)
	}

	_, err = svc.AddGuess(ctx, "u1", 1, "word7")
	if gamedto.CodeOf(err) != gamedto.CodeInvalidState {
		t.Fatalf("expected invalid_state on seventh guess, got %v", err)
	}
}

func TestAddGuessSetsInProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.NewGame(ctx, "u1", 1); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	state, err := svc.AddGuess(ctx, "u1", 1, "crane")
	if err != nil {
		t.Fatalf("AddGuess: %v", err)
	}
	if state.Status != domain.StatusInProgress {
		t.Fatalf("status = %s, want in-progress", state.Status)
	}
}

func TestAddGuessMissingGameNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddGuess(context.Background(), "ghost", 1, "crane")
	if gamedto.CodeOf(err) != gamedto.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestNewGameResetsProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.NewGame(ctx, "u1", 1); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := svc.AddGuess(ctx, "u1", 1, "crane"); err != nil {
		t.Fatalf("AddGuess: %v", err)
	}

	reset, err := svc.NewGame(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("NewGame (reset): %v", err)
	}
	if reset.GuessesLeft != 6 || len(reset.WordsGuessed) != 0 || reset.Status != domain.StatusNew {
		t.Fatalf("reset did not produce a fresh record: %+v", reset)
	}
}

func TestGamesAreIndependentPerDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.NewGame(ctx, "u1", 20260830); err != nil {
		t.Fatalf("NewGame day1: %v", err)
	}
	if _, err := svc.NewGame(ctx, "u1", 20260831); err != nil {
		t.Fatalf("NewGame day2: %v", err)
	}
	if _, err := svc.AddGuess(ctx, "u1", 20260830, "slate"); err != nil {
		t.Fatalf("AddGuess day1: %v", err)
	}

	day2, err := svc.Get(ctx, "u1", 20260831)
	if err != nil {
		t.Fatalf("Get day2: %v", err)
	}
	if day2.GuessesLeft != 6 {
		t.Fatalf("day2 state affected by day1 guess: %+v", day2)
	}
}
