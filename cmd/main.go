// Package main wires the roles bot: Discord session, spreadsheet source,
// usecases, slash commands and the HTTP health surface.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jabernat/SCHS-Robotics-Roles-Bot/config"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/platform"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/sheets"
	transportdiscord "github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/transport/discord"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/transport/http/middleware"
	handlers_fiber "github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/transport/http/server/handlers-fiber"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/internal/usecase"
	"github.com/jabernat/SCHS-Robotics-Roles-Bot/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Errorw("session initialization error", "error", err)
		return
	}

	gateway, err := platform.New(ctx, "discord", log, cfg, session)
	if err != nil {
		log.Errorw("platform initialization error", "error", err)
		return
	}

	rows, err := sheets.New(ctx, log, cfg)
	if err != nil {
		log.Errorw("sheets initialization error", "error", err)
		return
	}

	uc := usecase.New(log, ctx, gateway, rows, cfg.Ops.RequestTimeout)

	commands := transportdiscord.NewHandler(log, uc, cfg.Ops.RequestTimeout)
	commands.Register(session)

	if err := gateway.OnStart(ctx); err != nil {
		log.Errorw("gateway start error", "error", err)
		return
	}
	defer func() {
		_ = gateway.OnStop(context.Background())
	}()

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ShutdownTimeout,
		WriteTimeout: cfg.Server.ShutdownTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	h := handlers_fiber.NewHandler(log, uc)
	h.RegisterRoutes(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	log.Infow("roles bot running", "http_addr", cfg.ServerAddr())
	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
