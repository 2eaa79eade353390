package cacheta

type CreateGameRequest struct {
	Name      string   `json:"name"`
	EntryFee  float64  `json:"entryFee"`
	PlayerIds []uint64 `json:"playerIds"`
}

type RoundActionRequest struct {
	CachetaPlayerId uint64  `json:"cachetaPlayerId"`
	Kind            string  `json:"kind"`
	Outcome         *string `json:"outcome"`
}

type SubmitRoundRequest struct {
	Actions []RoundActionRequest `json:"actions"`
}

type RebuyRequest struct {
	CachetaPlayerId uint64 `json:"cachetaPlayerId"`
}

type FinalizeGameRequest struct {
	WinnerId       uint64   `json:"winnerId"`
	Payout         *float64 `json:"payout"`
	ExemptPlayerId *uint64  `json:"exemptPlayerId"`
}
