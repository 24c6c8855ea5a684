package model

// Player is a credential record owned by the game server's player table.
// The password column stores whatever the game server wrote; this backend
// compares it by exact value and never mutates it.
type Player struct {
	Nickname   string  `db:"nickname"    json:"nickname"`
	Password   string  `db:"password"    json:"-"`
	AdminLevel int     `db:"admin_level" json:"admin"`
	TelegramID *string `db:"telegram_id" json:"telegramId,omitempty"`
}

// ServerStats holds the aggregate figures served by /api/stats.
type ServerStats struct {
	PlayersCount int64 `db:"players_count" json:"playersCount"`
	TotalCash    int64 `db:"total_cash"    json:"totalCash"`
	TotalBank    int64 `db:"total_bank"    json:"totalBank"`
}
