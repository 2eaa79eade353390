package model

type TournamentStatus string

const (
	TournamentConfigured TournamentStatus = "CONFIGURED"
	TournamentRunning    TournamentStatus = "RUNNING"
	TournamentFinished   TournamentStatus = "FINISHED"
)
