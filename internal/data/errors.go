package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrTelegramIDTaken is returned when linking a telegram account that
	// is already linked to another player.
	ErrTelegramIDTaken = errors.New("telegram account already linked")
)
