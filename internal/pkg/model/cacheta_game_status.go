package model

type CachetaGameStatus string

const (
	CachetaGameInProgress CachetaGameStatus = "IN_PROGRESS"
	CachetaGameFinished   CachetaGameStatus = "FINISHED"
)
