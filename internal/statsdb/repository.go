package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/park285/wordle-backend/internal/domain"
)

// ErrDuplicateGame means a result for this (user, game) day was already
// recorded. Duplicate submissions are a conflict, never an overwrite.
var ErrDuplicateGame = errors.New("game result already recorded")

const dateLayout = "2006-01-02"

// ShardRepository is the per-shard query surface over the durable history.
// Every call targets a single shard; callers pick the shard via the router.
type ShardRepository interface {
	ShardCount() int

	InsertUser(ctx context.Context, shard int, user *domain.User) error
	ListUsers(ctx context.Context, shard int, limit int) ([]domain.User, error)
	FindUserByName(ctx context.Context, shard int, username string) (*domain.User, error)

	InsertGame(ctx context.Context, shard int, result *domain.GameResult) error
	CountGames(ctx context.Context, shard int, userID string) (int, error)
	WinGuessHistogram(ctx context.Context, shard int, userID string) (map[int]int, error)

	MaxStreak(ctx context.Context, shard int, userID string) (int, bool, error)
	CurrentStreak(ctx context.Context, shard int, userID string) (int, bool, error)
	Wins(ctx context.Context, shard int, userID string) (int, bool, error)
}

type repository struct {
	shards *Shards
}

func NewRepository(shards *Shards) ShardRepository {
	return &repository{shards: shards}
}

func (r *repository) ShardCount() int { return r.shards.Count() }

func (r *repository) db(shard int) *sql.DB { return r.shards.For(shard) }

func (r *repository) q(query string) string { return r.shards.Dialect().Rewrite(query) }

func (r *repository) InsertUser(ctx context.Context, shard int, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("nil user payload")
	}
	const query = `INSERT INTO users (user_id, username) VALUES (?, ?)`
	_, err := r.db(shard).ExecContext(ctx, r.q(query), user.UserID, user.Username)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *repository) ListUsers(ctx context.Context, shard int, limit int) ([]domain.User, error) {
	const query = `SELECT user_id, username FROM users LIMIT ?`
	rows, err := r.db(shard).QueryContext(ctx, r.q(query), limit)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.UserID, &u.Username); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) FindUserByName(ctx context.Context, shard int, username string) (*domain.User, error) {
	const query = `SELECT user_id, username FROM users WHERE username = ? LIMIT 1`
	var u domain.User
	err := r.db(shard).QueryRowContext(ctx, r.q(query), username).Scan(&u.UserID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user by name: %w", err)
	}
	return &u, nil
}

func (r *repository) InsertGame(ctx context.Context, shard int, result *domain.GameResult) error {
	if result == nil {
		return fmt.Errorf("nil game result payload")
	}
	const query = `
		INSERT INTO games (user_id, game_id, finished, guesses, won)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db(shard).ExecContext(ctx, r.q(query),
		result.UserID,
		result.GameID,
		result.Finished.Format(dateLayout),
		result.Guesses,
		result.Won,
	)
	if err != nil {
		if r.shards.Dialect().IsUniqueViolation(err) {
			return ErrDuplicateGame
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *repository) CountGames(ctx context.Context, shard int, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM games WHERE user_id = ?`
	var n int
	if err := r.db(shard).QueryRowContext(ctx, r.q(query), userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

func (r *repository) WinGuessHistogram(ctx context.Context, shard int, userID string) (map[int]int, error) {
	const query = `
		SELECT guesses, COUNT(*)
		FROM games
		WHERE user_id = ? AND won = ?
		GROUP BY guesses`
	rows, err := r.db(shard).QueryContext(ctx, r.q(query), userID, true)
	if err != nil {
		return nil, fmt.Errorf("select guess histogram: %w", err)
	}
	defer rows.Close()

	hist := make(map[int]int)
	for rows.Next() {
		var guesses, count int
		if err := rows.Scan(&guesses, &count); err != nil {
			return nil, fmt.Errorf("scan guess histogram: %w", err)
		}
		hist[guesses] = count
	}
	return hist, rows.Err()
}

func (r *repository) MaxStreak(ctx context.Context, shard int, userID string) (int, bool, error) {
	const query = `SELECT streak FROM streaks WHERE user_id = ? ORDER BY streak DESC LIMIT 1`
	return r.scanStreak(ctx, shard, query, userID)
}

func (r *repository) CurrentStreak(ctx context.Context, shard int, userID string) (int, bool, error) {
	const query = `SELECT streak FROM streaks WHERE user_id = ? ORDER BY ending DESC LIMIT 1`
	return r.scanStreak(ctx, shard, query, userID)
}

func (r *repository) scanStreak(ctx context.Context, shard int, query, userID string) (int, bool, error) {
	var streak int
	err := r.db(shard).QueryRowContext(ctx, r.q(query), userID).Scan(&streak)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("select streak: %w", err)
	}
	return streak, true, nil
}

func (r *repository) Wins(ctx context.Context, shard int, userID string) (int, bool, error) {
	const query = `SELECT wins FROM wins WHERE user_id = ? LIMIT 1`
	var wins int
	err := r.db(shard).QueryRowContext(ctx, r.q(query), userID).Scan(&wins)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("select wins: %w", err)
	}
	return wins, true, nil
}
