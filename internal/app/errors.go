package app

import "errors"

// ErrNoLeague is returned when a league action runs before a league exists.
var ErrNoLeague = errors.New("no league created")
