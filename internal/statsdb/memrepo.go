package statsdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/park285/wordle-backend/internal/domain"
)

// MemRepo is a development-only in-memory ShardRepository used when no
// database is configured (DB_DRIVER=memory) and by tests. The streaks and
// wins tables are normally filled by an external writer, so MemRepo exposes
// Seed helpers for them.
type MemRepo struct {
	mu sync.RWMutex

	users   [][]domain.User                   // per shard, insertion order
	games   []map[string]domain.GameResult    // per shard, key user|game
	streaks []map[string][]domain.StreakRow   // per shard, key user
	wins    []map[string]int                  // per shard, key user
}

func NewMemoryRepository(shardCount int) *MemRepo {
	m := &MemRepo{
		users:   make([][]domain.User, shardCount),
		games:   make([]map[string]domain.GameResult, shardCount),
		streaks: make([]map[string][]domain.StreakRow, shardCount),
		wins:    make([]map[string]int, shardCount),
	}
	for i := 0; i < shardCount; i++ {
		m.games[i] = make(map[string]domain.GameResult)
		m.streaks[i] = make(map[string][]domain.StreakRow)
		m.wins[i] = make(map[string]int)
	}
	return m
}

func (m *MemRepo) ShardCount() int { return len(m.games) }

func gameKey(userID string, gameID int) string {
	return fmt.Sprintf("%s|%d", userID, gameID)
}

func (m *MemRepo) InsertUser(ctx context.Context, shard int, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("nil user payload")
	}
	m.mu.Lock()
	m.users[shard] = append(m.users[shard], *user)
	m.mu.Unlock()
	return nil
}

func (m *MemRepo) ListUsers(ctx context.Context, shard int, limit int) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.users[shard]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return append([]domain.User(nil), list...), nil
}

func (m *MemRepo) FindUserByName(ctx context.Context, shard int, username string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users[shard] {
		if u.Username == username {
			copy := u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MemRepo) InsertGame(ctx context.Context, shard int, result *domain.GameResult) error {
	if result == nil {
		return fmt.Errorf("nil game result payload")
	}
	key := gameKey(result.UserID, result.GameID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.games[shard][key]; exists {
		return ErrDuplicateGame
	}
	m.games[shard][key] = *result
	return nil
}

func (m *MemRepo) CountGames(ctx context.Context, shard int, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, g := range m.games[shard] {
		if g.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MemRepo) WinGuessHistogram(ctx context.Context, shard int, userID string) (map[int]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hist := make(map[int]int)
	for _, g := range m.games[shard] {
		if g.UserID == userID && g.Won {
			hist[g.Guesses]++
		}
	}
	return hist, nil
}

func (m *MemRepo) MaxStreak(ctx context.Context, shard int, userID string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.streaks[shard][userID]
	if len(rows) == 0 {
		return 0, false, nil
	}
	max := rows[0].Streak
	for _, row := range rows[1:] {
		if row.Streak > max {
			max = row.Streak
		}
	}
	return max, true, nil
}

func (m *MemRepo) CurrentStreak(ctx context.Context, shard int, userID string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.streaks[shard][userID]
	if len(rows) == 0 {
		return 0, false, nil
	}
	latest := rows[0]
	for _, row := range rows[1:] {
		if row.Ending.After(latest.Ending) {
			latest = row
		}
	}
	return latest.Streak, true, nil
}

func (m *MemRepo) Wins(ctx context.Context, shard int, userID string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wins, ok := m.wins[shard][userID]
	return wins, ok, nil
}

// SeedStreak appends a streak row, standing in for the external streak writer.
func (m *MemRepo) SeedStreak(shard int, row domain.StreakRow) {
	m.mu.Lock()
	m.streaks[shard][row.UserID] = append(m.streaks[shard][row.UserID], row)
	m.mu.Unlock()
}

// SeedWins sets the wins counter, standing in for the external wins writer.
func (m *MemRepo) SeedWins(shard int, userID string, wins int) {
	m.mu.Lock()
	m.wins[shard][userID] = wins
	m.mu.Unlock()
}
