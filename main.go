package main

import (
	"os"

	"esports-arena/internal"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	var store internal.Store
	if cfg.Store == "memory" {
		store = internal.NewMemory()
		log.Info().Msg("using in-memory store")
	} else {
		store = internal.MustStore(cfg)
		log.Info().Str("db", cfg.DBName).Msg("connected to mongo")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), internal.RequestLogger(), cors.Default())

	api := r.Group("/api")
	{
		api.POST("/teams", internal.CreateTeam(store))
		api.GET("/teams", internal.ListTeams(store))
		api.DELETE("/teams/:id", internal.DeleteTeam(store))

		api.POST("/players", internal.CreatePlayer(store))
		api.GET("/players", internal.ListPlayers(store))
		api.DELETE("/players/:id", internal.DeletePlayer(store))

		api.POST("/referees", internal.CreateReferee(store))
		api.GET("/referees", internal.ListReferees(store))

		api.POST("/matches", internal.CreateMatch(store))
		api.GET("/matches", internal.ListMatches(store))
		api.DELETE("/matches/:id", internal.DeleteMatch(store))

		api.POST("/awards", internal.CreateAward(store))
		api.GET("/awards", internal.ListAwards(store))
		api.DELETE("/awards/:id", internal.DeleteAward(store))

		q := api.Group("/queries")
		{
			q.GET("/highestKills", internal.Report(store.TopKillers))
			q.GET("/semifinals", internal.Report(store.Semifinals))
			q.GET("/activeReferees", internal.Report(store.ActiveReferees))
			q.GET("/multiGamePlayers", internal.Report(store.MultiGamePlayers))
			q.GET("/matchMVPs", internal.Report(store.MatchMVPs))
			q.GET("/avgTeamScore", internal.Report(store.AvgTeamScores))
			q.GET("/dualWinners", internal.Report(store.DualWinners))
			q.GET("/drawMatches", internal.Report(store.DrawMatches))
			q.GET("/zeroWinTeams", internal.Report(store.ZeroWinTeams))
			q.GET("/top3Teams", internal.Report(store.TopTeams))
		}
	}

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
