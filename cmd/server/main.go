package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/Shivansh1606/advocate-chat-app/internal/adapters/http"
	"github.com/Shivansh1606/advocate-chat-app/internal/adapters/ws"
	"github.com/Shivansh1606/advocate-chat-app/internal/app"
	"github.com/Shivansh1606/advocate-chat-app/internal/config"
	"github.com/Shivansh1606/advocate-chat-app/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to open database")
	}
	defer db.Close()

	messages := storage.NewMessageRepository(db)
	clients := storage.NewClientRepository(db)
	bookings := storage.NewBookingRepository(db)

	chatRooms := app.NewChatRegistry(cfg.ChatLogCap, cfg.MaxRooms)
	signalRooms := app.NewSignalRegistry(cfg.SignalLogCap, cfg.MaxRooms)

	dispatcher := app.NewDispatcher(chatRooms, signalRooms, messages)
	dispatcher.Threshold = cfg.PresenceThreshold
	dispatcher.PersistTimeout = cfg.PersistTimeout

	relay := ws.NewRelay(dispatcher)
	dispatcher.Push = relay

	sweeper := &app.Sweeper{
		Chat:      chatRooms,
		Signals:   signalRooms,
		Policy:    app.TTLPolicy{TTL: cfg.RoomTTL},
		Interval:  cfg.SweepInterval,
		Threshold: cfg.PresenceThreshold,
	}
	go sweeper.Run(ctx)

	directory, err := router.LoadDirectory(cfg.AdvocatesFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.AdvocatesFile).Msg("advocate listing unavailable")
		directory = router.EmptyDirectory()
	}

	r := router.SetupRouter(cfg, router.Deps{
		Dispatch:  dispatcher,
		Clients:   clients,
		Bookings:  bookings,
		Messages:  messages,
		Advocates: directory,
		ChatWS:    relay,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("advocate-chat server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
