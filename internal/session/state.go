package session

import "git.lost.host/meutraa/fluxbeat/internal/game"

// Loading is reachable from every state because starting a new session
// abandons the current one. Loading falls back to Idle when a load fails.
var transitions = map[game.State][]game.State{
	game.Idle:    {game.Loading},
	game.Loading: {game.Loading, game.Playing, game.Idle},
	game.Playing: {game.Loading, game.Paused, game.Ended},
	game.Paused:  {game.Loading, game.Playing, game.Idle},
	game.Ended:   {game.Loading, game.Idle},
}

func canTransition(from, to game.State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
