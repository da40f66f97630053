package pkg

// TurnFlags is the bit set stored per turn-cost entry. every registered flag encoder owns
// a slice of these bits (restricted bit + turn cost bits).
type TurnFlags uint64

// AccessFlags is the bit set stored per edge. every registered flag encoder owns two bits:
// forward (base->adj) and backward (adj->base).
type AccessFlags uint64

const (
	// NO_TURN_FLAGS is returned for transitions without a turn-cost entry.
	NO_TURN_FLAGS TurnFlags = 0

	// bits available in TurnFlags/AccessFlags for all encoders together
	MAX_TURN_FLAG_BITS   = 64
	MAX_ACCESS_FLAG_BITS = 64

	DEFAULT_MAX_TURN_COST         = 3
	INF_TURN_COST         float64 = 1e15
)
