package domain

import "time"

// User is the durable identity row, stored once on the user's shard.
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// GameResult is one completed daily game, inserted once into the shard's
// games table. (user_id, game_id) is the primary key; a second submission for
// the same day is a conflict, never an overwrite.
type GameResult struct {
	UserID   string
	GameID   int
	Finished time.Time
	Guesses  int
	Won      bool
}

// StreakRow is one append-only row in the streaks table. The row with the
// latest ending date carries the current streak; the row with the largest
// streak value carries the max streak.
type StreakRow struct {
	UserID string
	Streak int
	Ending time.Time
}

// UserStats is the aggregate view computed from a user's shard. Guesses maps
// guess counts (as decimal strings) to win frequency, plus a "failed" entry
// counting lost games.
type UserStats struct {
	CurrentStreak  int            `json:"currentStreak"`
	MaxStreak      int            `json:"maxStreak"`
	Guesses        map[string]int `json:"guesses"`
	WinPercentage  float64        `json:"winPercentage"`
	GamesPlayed    int            `json:"gamesPlayed"`
	GamesWon       int            `json:"gamesWon"`
	AverageGuesses float64        `json:"averageGuesses"`
}

// ShardUsers is one per-shard batch from a user listing scan.
type ShardUsers struct {
	Shard int    `json:"stats_db"`
	Users []User `json:"users"`
}

// LeaderboardEntry is one member of a redis sorted-set leaderboard snapshot.
type LeaderboardEntry struct {
	UserID string
	Score  float64
}
