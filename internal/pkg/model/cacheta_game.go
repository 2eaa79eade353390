package model

import (
	"time"
)

type CachetaGame struct {
	Id          uint64            `json:"id"`
	Name        string            `json:"name"`
	EntryFee    float64           `json:"entryFee"`
	Status      CachetaGameStatus `json:"status"`
	WinnerId    *uint64           `json:"winnerId"`
	Payout      *float64          `json:"payout"`
	TimeCreated time.Time         `json:"timeCreated" gorm:"autoCreateTime"`

	Players []CachetaPlayer `json:"players,omitempty" gorm:"foreignKey:GameId"`
	Rounds  []CachetaRound  `json:"rounds,omitempty" gorm:"foreignKey:GameId"`
}

func (CachetaGame) TableName() string {
	return "cacheta_game"
}
