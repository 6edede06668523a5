// Package gamestate manages the transient per-user-per-day game record.
// State lives only in redis; the durable history is the statistics service's
// concern.
package gamestate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/wordle-backend/internal/domain"
	"github.com/park285/wordle-backend/pkg/gamedto"
)

type Service struct {
	store *Store
	log   *zap.Logger
}

func New(store *Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, log: logger}
}

// Get fetches the game for (user, day).
func (s *Service) Get(ctx context.Context, userID string, gameID int) (*domain.GameState, error) {
	state, err := s.load(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, gamedto.NotFound("User has not started this game.")
	}
	return state, nil
}

// NewGame writes a fresh record for (user, day), overwriting any existing
// one. Re-issuing "new game" mid-game silently resets progress.
func (s *Service) NewGame(ctx context.Context, userID string, gameID int) (*domain.GameState, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, gamedto.InvalidArgument("user_id is required")
	}
	if gameID == 0 {
		gameID = domain.TodayGameID()
	}
	state := &domain.GameState{
		UserID:       userID,
		GameID:       gameID,
		Status:       domain.StatusNew,
		GuessesLeft:  domain.MaxGuesses,
		WordsGuessed: []string{},
	}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save game state: %w", err)
	}
	s.log.Info("new game", zap.String("user_id", userID), zap.Int("game_id", gameID))
	return state, nil
}

// AddGuess appends a guess to an existing game and burns one attempt. Guess
// content is not validated here; word checking belongs to the game front end.
func (s *Service) AddGuess(ctx context.Context, userID string, gameID int, guess string) (*domain.GameState, error) {
	state, err := s.load(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, gamedto.NotFound("User has not started this game.")
	}
	if state.GuessesLeft == 0 {
		return nil, gamedto.InvalidState("User has no guesses left")
	}

	state.WordsGuessed = append(state.WordsGuessed, guess)
	state.GuessesLeft--
	state.Status = domain.StatusInProgress
	if state.GuessesLeft == 0 {
		state.Status = domain.StatusFinished
	}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save game state: %w", err)
	}
	return state, nil
}

func (s *Service) load(ctx context.Context, userID string, gameID int) (*domain.GameState, error) {
	state, err := s.store.Load(ctx, userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game state: %w", err)
	}
	return state, nil
}
