package gamedto

import "encoding/json"

// GameRef identifies a (user, daily game) pair in state requests. GameID 0
// means "today".
type GameRef struct {
	UserID string `json:"user_id"`
	GameID int    `json:"game_id"`
}

// GameResultPayload is the wire form of a completed game submission.
// Finished is an optional YYYY-MM-DD date defaulting to today.
type GameResultPayload struct {
	UserID   string `json:"user_id"`
	GameID   int    `json:"game_id"`
	Finished string `json:"finished,omitempty"`
	Guesses  int    `json:"guesses"`
	Won      bool   `json:"won"`
}

// RegisterUserPayload creates a new user identity.
type RegisterUserPayload struct {
	Username string `json:"username"`
}

// ErrorBody is the JSON error envelope for every non-2xx response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// ScorePair serializes a leaderboard entry as a [user_id, score] array, the
// shape zrevrange clients historically got.
type ScorePair struct {
	UserID string
	Score  float64
}

func (p ScorePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.UserID, p.Score})
}

func (p *ScorePair) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &p.UserID); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Score)
}
