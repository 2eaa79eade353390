package model

import (
	"time"
)

type Player struct {
	Id        uint64    `json:"id"`
	Name      string    `json:"name"`
	PixKey    *string   `json:"pixKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Player) TableName() string {
	return "player"
}
