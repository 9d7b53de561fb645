package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/internal/hangman"
	"github.com/robalobadob/evilhangman/internal/httpserver"
	"github.com/robalobadob/evilhangman/internal/store"
	"github.com/robalobadob/evilhangman/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_PRETTY", "") == "1" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	list, src, err := words.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	dict, err := hangman.NewDictionary(list)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dictionary")
	}
	fp := words.Fingerprint(dict.Words())
	log.Info().Str("source", src.String()).Int("words", dict.Size()).Ints("lengths", dict.Lengths()).
		Str("fingerprint", fp[:12]).Msg("dictionary loaded")

	archive, err := store.OpenArchive(getEnv("DB_PATH", "./data/hangman.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open archive")
	}
	defer archive.Close()

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		secret = "dev-only-secret"
		log.Warn().Msg("JWT_SECRET not set; using an insecure development secret")
	}
	maxWrong, err := strconv.Atoi(getEnv("DEFAULT_MAX_WRONG", "8"))
	if err != nil || maxWrong < 1 {
		log.Fatal().Str("DEFAULT_MAX_WRONG", os.Getenv("DEFAULT_MAX_WRONG")).Msg("invalid max wrong guesses")
	}

	srv := httpserver.New(httpserver.Config{
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:       []byte(secret),
		DailySalt:       getEnv("DAILY_SALT", "evil-hangman"),
		DefaultMaxWrong: maxWrong,
		FoldCase:        src.Lowercase,
		Fingerprint:     fp,
	}, dict, store.NewMemoryStore(), archive)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting evil-hangman server")
	if err := srv.Start(ctx, ":"+port); err != nil {
		log.Error().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
