package domain

import "time"

// GameStatus represents the lifecycle state of an in-progress game.
type GameStatus string

const (
	StatusNew        GameStatus = "new"
	StatusInProgress GameStatus = "in-progress"
	StatusFinished   GameStatus = "finished"
)

// MaxGuesses is the number of attempts a player gets per daily game.
const MaxGuesses = 6

// GameState is the transient per-user-per-day game record. It lives only in
// redis, keyed by user id with the game id as hash field.
type GameState struct {
	UserID       string     `json:"user_id"`
	GameID       int        `json:"game_id"`
	Status       GameStatus `json:"status"`
	GuessesLeft  int        `json:"guesses_left"`
	WordsGuessed []string   `json:"words_guessed"`
}

// TodayGameID returns the default game id: today's date as YYYYMMDD.
func TodayGameID() int {
	now := time.Now()
	return now.Year()*10000 + int(now.Month())*100 + now.Day()
}
