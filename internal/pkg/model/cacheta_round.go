package model

type CachetaRound struct {
	Id     uint64 `json:"id"`
	GameId uint64 `json:"gameId"`
	Number int    `json:"number"`

	Actions []CachetaRoundAction `json:"actions,omitempty" gorm:"foreignKey:RoundId"`
}

func (CachetaRound) TableName() string {
	return "cacheta_round"
}
