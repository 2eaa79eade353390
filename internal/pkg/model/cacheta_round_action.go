package model

type ActionKind string

const (
	ActionWent   ActionKind = "WENT"
	ActionPassed ActionKind = "PASSED"
)

type ActionOutcome string

const (
	OutcomeWon  ActionOutcome = "WON"
	OutcomeLost ActionOutcome = "LOST"
)

// CachetaRoundAction is the audit trail for a point mutation: the
// before/after snapshots are written once and never updated.
type CachetaRoundAction struct {
	Id              uint64         `json:"id"`
	RoundId         uint64         `json:"roundId"`
	CachetaPlayerId uint64         `json:"cachetaPlayerId"`
	Kind            ActionKind     `json:"kind"`
	Outcome         *ActionOutcome `json:"outcome"`
	PointsBefore    int            `json:"pointsBefore"`
	PointsAfter     int            `json:"pointsAfter"`
}

func (CachetaRoundAction) TableName() string {
	return "cacheta_round_action"
}
