package model

type CachetaPlayer struct {
	Id       uint64 `json:"id"`
	GameId   uint64 `json:"gameId"`
	PlayerId uint64 `json:"playerId"`
	Points   int    `json:"points"`
	Rebuys   int    `json:"rebuys"`

	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerId"`
}

func (CachetaPlayer) TableName() string {
	return "cacheta_player"
}
