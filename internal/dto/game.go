package dto

// ── arcade ──

// SaveScoreRequest stores a finished game.
type SaveScoreRequest struct {
	Game  string `json:"game"  binding:"required,game"`
	Score int    `json:"score" binding:"min=0,max=100000000"`
}

// LeaderboardRequest selects a leaderboard.
type LeaderboardRequest struct {
	Game  string `form:"game"  binding:"omitempty,game"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// CreditsResponse is a credit balance.
type CreditsResponse struct {
	Credits int `json:"credits"`
}

// ScoreResponse is one leaderboard row.
type ScoreResponse struct {
	Rank      int        `json:"positie"`
	Game      string     `json:"game"`
	Score     int        `json:"score"`
	User      *UserBrief `json:"speler,omitempty"`
	CreatedAt string     `json:"created_at"`
}
