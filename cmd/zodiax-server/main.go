package main

import (
	"os"

	"github.com/MackZumarraga/zodiax-game/internal/api"
	"github.com/MackZumarraga/zodiax-game/internal/config"
	"github.com/MackZumarraga/zodiax-game/internal/constants"
	"github.com/MackZumarraga/zodiax-game/internal/engine"
	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/logging"
	"github.com/MackZumarraga/zodiax-game/internal/service"
	"github.com/MackZumarraga/zodiax-game/internal/session"
	"github.com/MackZumarraga/zodiax-game/internal/storage"
	"github.com/MackZumarraga/zodiax-game/internal/ws"

	"github.com/gin-gonic/gin"
)

// enemyName is the AI-controlled record used by the solo battle endpoints.
const enemyName = "Enemy"

func main() {
	// Load game configuration (required). Path may be provided via
	// ZODIAX_CONFIG or defaults to ./zodiax_config.json in the current
	// working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid zodiax configuration", err, logging.Fields{"config_path": configPath, "hint": "create a zodiax_config.json with a 'character_list' array of {name,max_hp,max_mp} and optional keys: skill_list, server.address, battle.{block_reduction_percent,reflect_percent,randomize_first_turn,default_max_hp,default_max_mp}"})
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		logging.Fatal("Invalid skill configuration", err, logging.Fields{"config_path": configPath})
	}

	dispatcher := engine.NewDispatcher(engine.Rules{
		BlockReductionPercent: cfg.BlockReductionPercent,
		ReflectPercent:        cfg.ReflectPercent,
	})

	// Allow the DB path to be configured via ZODIAX_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	db, err := storage.OpenAndMigrate(dbPath, seedRecords(cfg))
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	svc := service.NewBattleService(repo, catalog, dispatcher)
	manager := session.NewManager(catalog, dispatcher, repo, cfg.Characters, cfg.RandomizeFirstTurn)
	wsHandler := ws.NewHandler(manager)
	handler := api.NewBattleHandler(svc, repo, manager, cfg.DefaultMaxHP, cfg.DefaultMaxMP)

	router := gin.Default()

	router.GET(constants.RouteWS, wsHandler.Serve)

	router.POST(constants.RouteBattleAttack, handler.Attack)
	router.POST(constants.RouteBattleBlock, handler.Block)
	router.POST(constants.RouteBattleHeal, handler.Heal)
	router.POST(constants.RouteBattleCurse, handler.Curse)
	router.POST(constants.RouteGameStart, handler.StartGame)

	router.GET(constants.RouteCharacters, handler.Characters)
	router.GET(constants.RoutePlayerStats, handler.PlayerStats)
	router.GET(constants.RouteMatches, handler.Matches)
	router.GET(constants.RouteVersion, api.Version)

	addr := cfg.ServerAddress
	if port := os.Getenv(constants.EnvPort); port != "" {
		addr = ":" + port
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// seedRecords builds the initial persistence rows: one record per
// selectable character plus the AI enemy used by the solo endpoints.
func seedRecords(cfg *config.LoadedConfig) []game.PlayerRecord {
	recs := make([]game.PlayerRecord, 0, len(cfg.Characters)+1)
	for _, ch := range cfg.Characters {
		recs = append(recs, game.PlayerRecord{Name: ch.Name, MaxHP: ch.MaxHP, MaxMP: ch.MaxMP})
	}
	recs = append(recs, game.PlayerRecord{Name: enemyName, MaxHP: cfg.DefaultMaxHP, MaxMP: cfg.DefaultMaxMP, IsEnemy: true})
	return recs
}
