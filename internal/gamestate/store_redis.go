package gamestate

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/park285/wordle-backend/internal/domain"
)

// Store keeps one redis hash per user: field = decimal game id, value = the
// JSON-encoded GameState. Entries are overwritten, never deleted.
type Store struct{ rdb *redis.Client }

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func field(gameID int) string { return strconv.Itoa(gameID) }

// Load returns nil without error when the game does not exist.
func (s *Store) Load(ctx context.Context, userID string, gameID int) (*domain.GameState, error) {
	raw, err := s.rdb.HGet(ctx, userID, field(gameID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state domain.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save writes the whole record. Callers do a full read-modify-write; the
// last writer wins.
func (s *Store) Save(ctx context.Context, state *domain.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, state.UserID, field(state.GameID), raw).Err()
}
