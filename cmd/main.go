package main

import (
	"net/http"
	"time"

	"github.com/cardnight-club/cardnight-backend/internal/cacheta"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/middleware"
	"github.com/cardnight-club/cardnight-backend/internal/pkg/ws"
	"github.com/cardnight-club/cardnight-backend/internal/player"
	"github.com/cardnight-club/cardnight-backend/internal/scoreboard"
	"github.com/cardnight-club/cardnight-backend/internal/tournament"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupViper()
	setupZerolog()
	db := setupDb()
	apiRouter := setupApiRouter(db)

	port := viper.Get("PORT").(string)
	server := &http.Server{
		Addr:         port,
		Handler:      apiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupDb() *gorm.DB {
	dbUrl := viper.Get("DB_URL").(string)

	db, err := gorm.Open(postgres.Open(dbUrl), &gorm.Config{})

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	sqlDb, _ := db.DB()

	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	return db
}

func setupApiRouter(db *gorm.DB) *gin.Engine {
	apiRouter := gin.Default()
	routerGroup := apiRouter.Group("/cardnight-api")

	middleware.RegisterGlobalMiddleware(apiRouter)

	notificationHub := ws.NewNotificationHub()

	scoreboard.RegisterRoutes(routerGroup, notificationHub)
	player.RegisterRoutes(routerGroup, db)
	cacheta.RegisterRoutes(routerGroup, db, notificationHub)
	tournament.RegisterRoutes(routerGroup, db)

	return apiRouter
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
