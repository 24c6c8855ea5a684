package ports

import "errors"

// ErrSessionNotFound is returned by SessionStore operations when no record
// exists for the given token.
var ErrSessionNotFound = errors.New("session not found")

// ErrPlayerNotFound is returned by PlayerDirectory.FindByNickname when no
// player exists with the given nickname.
var ErrPlayerNotFound = errors.New("player not found")
