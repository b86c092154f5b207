package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"katakilat/internal/chat"
	"katakilat/internal/config"
	"katakilat/internal/dictionary"
	"katakilat/internal/game"
	"katakilat/internal/httpserver"
	"katakilat/internal/leaderboard"
	"katakilat/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := dictionary.Load(cfg.DictFiles)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", dict.Len()).Msg("dictionary ready")

	var boardStore leaderboard.Store
	if cfg.DBPath != "" {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		defer db.Close()
		boardStore = store.NewSQLite(db)
	} else {
		boardStore = store.NewMemory()
	}
	board := leaderboard.New(boardStore, log.Logger)

	gameCfg := game.DefaultConfig()
	gameCfg.RoundSeconds = cfg.RoundSeconds
	gameCfg.ResultSeconds = cfg.ResultSeconds
	gameCfg.RestartSeconds = cfg.RestartSeconds
	session := game.NewSession(dict, board, gameCfg, log.Logger)

	feed := chat.NewFeed(cfg.ChatAddr, log.Logger)
	feed.Subscribe(session.HandleChat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go session.Run(ctx)
	go feed.Run(ctx)

	srv := httpserver.New(session, board, dict)
	log.Info().Str("addr", cfg.Addr).Str("chat", cfg.ChatAddr).Msg("starting katakilat")
	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
