package model

type TournamentPlayer struct {
	Id           uint64 `json:"id"`
	TournamentId uint64 `json:"tournamentId"`
	PlayerId     uint64 `json:"playerId"`
	Reentries    int    `json:"reentries"`

	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerId"`
}

func (TournamentPlayer) TableName() string {
	return "tournament_player"
}
