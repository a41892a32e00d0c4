package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"minigames/internal/games"
	"minigames/internal/server"
	"minigames/internal/store"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}

	dbPath := "minigames.db"
	if p := os.Getenv("DB_PATH"); p != "" {
		dbPath = p
	}

	st, err := store.NewSQLite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer st.Close()

	registry := games.NewRegistry()
	srv := server.New(registry, st)

	log.Info().Str("addr", addr).Int("games", len(registry.List())).Msg("listening")
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
