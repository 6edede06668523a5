// Package stats derives per-user aggregates from the sharded relational
// history and serves leaderboard snapshots from redis. The redis sorted sets
// are read-only here; an external writer keeps them in step with the
// relational wins/streaks tables.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/wordle-backend/internal/domain"
	"github.com/park285/wordle-backend/internal/shard"
	"github.com/park285/wordle-backend/internal/statsdb"
	"github.com/park285/wordle-backend/pkg/gamedto"
)

const (
	keyStreaks = "streaks"
	keyWins    = "wins"

	// maxUserPage caps a per-shard user batch.
	maxUserPage = 100
)

type Service struct {
	repo statsdb.ShardRepository
	rdb  *redis.Client
	log  *zap.Logger
}

func New(repo statsdb.ShardRepository, rdb *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, rdb: rdb, log: logger}
}

// RecordResult inserts a completed game on the user's shard. GameID defaults
// to today's YYYYMMDD and Finished to today. A second submission for the same
// day is a conflict.
func (s *Service) RecordResult(ctx context.Context, result *domain.GameResult) (*domain.GameResult, error) {
	if result == nil {
		return nil, gamedto.InvalidArgument("missing game result")
	}
	shardID, err := shard.UserShard(result.UserID, s.repo.ShardCount())
	if err != nil {
		return nil, err
	}
	if result.GameID == 0 {
		result.GameID = domain.TodayGameID()
	}
	if result.Finished.IsZero() {
		result.Finished = time.Now()
	}
	if err := s.repo.InsertGame(ctx, shardID, result); err != nil {
		if errors.Is(err, statsdb.ErrDuplicateGame) {
			return nil, gamedto.Conflict("game result already recorded for this day")
		}
		return nil, fmt.Errorf("record result: %w", err)
	}
	s.log.Info("game result recorded",
		zap.String("user_id", result.UserID),
		zap.Int("game_id", result.GameID),
		zap.Int("shard", shardID),
		zap.Bool("won", result.Won))
	return result, nil
}

// RegisterUser creates a new identity and stores it on its shard.
func (s *Service) RegisterUser(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, gamedto.InvalidArgument("username is required")
	}
	user := &domain.User{UserID: uuid.NewString(), Username: username}
	shardID, err := shard.UserShard(user.UserID, s.repo.ShardCount())
	if err != nil {
		return nil, err
	}
	if err := s.repo.InsertUser(ctx, shardID, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	s.log.Info("user registered",
		zap.String("user_id", user.UserID),
		zap.Int("shard", shardID))
	return user, nil
}

// UserByName scans shards in ascending order and returns the first match.
// Usernames are assumed globally unique; this does not enforce it.
func (s *Service) UserByName(ctx context.Context, username string) (*domain.User, error) {
	for i := 0; i < s.repo.ShardCount(); i++ {
		user, err := s.repo.FindUserByName(ctx, i, username)
		if err != nil {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		if user != nil {
			return user, nil
		}
	}
	return nil, gamedto.NotFound("User does not exist")
}

// Stats computes the aggregate view for one user from their shard. A user
// with no streak rows has no recorded games at all and yields not_found.
func (s *Service) Stats(ctx context.Context, userID string) (*domain.UserStats, error) {
	shardID, err := shard.UserShard(userID, s.repo.ShardCount())
	if err != nil {
		return nil, err
	}

	maxStreak, ok, err := s.repo.MaxStreak(ctx, shardID, userID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if !ok {
		return nil, gamedto.NotFound("No game stats found for this user")
	}
	currentStreak, _, err := s.repo.CurrentStreak(ctx, shardID, userID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	gamesPlayed, err := s.repo.CountGames(ctx, shardID, userID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	if gamesPlayed == 0 {
		return nil, gamedto.InvalidState("user has no recorded games")
	}
	// A missing wins row means zero wins, not an error in itself.
	wins, _, err := s.repo.Wins(ctx, shardID, userID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	losses := gamesPlayed - wins

	hist, err := s.repo.WinGuessHistogram(ctx, shardID, userID)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	guesses := make(map[string]int, len(hist)+1)
	sum := 0
	for count, freq := range hist {
		guesses[strconv.Itoa(count)] = freq
		sum += count * freq
	}
	guesses["failed"] = losses

	if wins == 0 {
		return nil, gamedto.InvalidState("user has no wins; average guesses is undefined")
	}

	return &domain.UserStats{
		CurrentStreak:  currentStreak,
		MaxStreak:      maxStreak,
		Guesses:        guesses,
		WinPercentage:  float64(wins) / float64(gamesPlayed),
		GamesPlayed:    gamesPlayed,
		GamesWon:       wins,
		AverageGuesses: float64(sum) / float64(wins),
	}, nil
}

// Top10Streaks returns the streak leaderboard snapshot, best first.
func (s *Service) Top10Streaks(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.topTen(ctx, keyStreaks)
}

// Top10Wins returns the wins leaderboard snapshot, best first.
func (s *Service) Top10Wins(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	return s.topTen(ctx, keyWins)
}

func (s *Service) topTen(ctx context.Context, key string) ([]domain.LeaderboardEntry, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, 9).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard %s: %w", key, err)
	}
	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{UserID: member, Score: z.Score})
	}
	return entries, nil
}
