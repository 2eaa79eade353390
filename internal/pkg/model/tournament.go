package model

import (
	"time"
)

type Tournament struct {
	Id            uint64           `json:"id"`
	Name          string           `json:"name"`
	BuyIn         float64          `json:"buyIn"`
	StartingStack int              `json:"startingStack"`
	LevelMinutes  int              `json:"levelMinutes"`
	Status        TournamentStatus `json:"status"`
	FirstPlaceId  *uint64          `json:"firstPlaceId"`
	SecondPlaceId *uint64          `json:"secondPlaceId"`
	TimeCreated   time.Time        `json:"timeCreated" gorm:"autoCreateTime"`

	Players []TournamentPlayer `json:"players,omitempty" gorm:"foreignKey:TournamentId"`
}

func (Tournament) TableName() string {
	return "tournament"
}
