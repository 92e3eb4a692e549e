package model

import "time"

// Arcade games that keep scores.
const (
	GameBreakout    = "breakout"
	GameParatrooper = "paratrooper"
)

// Credit transaction reasons.
const (
	CreditReasonCompletion = "completion"
	CreditReasonSpend      = "spend"
	CreditReasonGrant      = "grant"
)

// GameCredit is the arcade credit balance of one user. Table game_credits.
type GameCredit struct {
	UserID    string    `gorm:"type:uuid;primaryKey"                json:"user_id"`
	Credits   int       `gorm:"not null;default:0"                  json:"credits"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"updated_at"`
}

func (GameCredit) TableName() string { return "game_credits" }

// CreditTransaction records one balance change. Table credit_transactions.
type CreditTransaction struct {
	TransactionID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"transaction_id"`
	UserID         string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Amount         int       `gorm:"not null"                                       json:"amount"`
	Reason         string    `gorm:"type:varchar(20);not null"                      json:"reason"`
	PlanningItemID *string   `gorm:"type:uuid"                                      json:"planning_item_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (CreditTransaction) TableName() string { return "credit_transactions" }

// GameScore is one finished game. Table game_scores.
type GameScore struct {
	ScoreID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"score_id"`
	UserID    string    `gorm:"type:uuid;not null"                             json:"user_id"`
	Game      string    `gorm:"type:varchar(20);not null;index"                json:"game"`
	Score     int       `gorm:"not null"                                       json:"score"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (GameScore) TableName() string { return "game_scores" }
