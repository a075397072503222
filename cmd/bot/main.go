package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/app"
	"github.com/fardannozami/ecoplay/internal/app/usecase"
	"github.com/fardannozami/ecoplay/internal/config"
	"github.com/fardannozami/ecoplay/internal/infra/sqlite"
	"github.com/fardannozami/ecoplay/internal/infra/wa"
	"github.com/fardannozami/ecoplay/internal/logger"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Logger
	log := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}).Named("bot")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Storage & Use Cases
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("app_init_failed", zap.Error(err))
	}
	defer a.Close()
	handleMessageUC := a.ChatHandler()

	// LIDs live in whatsmeow's tables, which share the sqlite file.
	db := a.DB
	if db == nil {
		if db, err = app.OpenSQLite(cfg.SQLitePath); err != nil {
			log.Fatal("open_sqlite_failed", zap.Error(err))
		}
		defer db.Close()
	}
	lids := sqlite.NewLIDResolver(db)

	// 4. WhatsApp Service
	waService := wa.NewService(cfg.SQLitePath, log.Named("wa"), wa.ReplyOptions{
		MinDelay:   time.Duration(cfg.ReplyDelayMinMs) * time.Millisecond,
		MaxDelay:   time.Duration(cfg.ReplyDelayMaxMs) * time.Millisecond,
		ShowTyping: cfg.ShowTyping,
	})

	// 5. Register Message Handler
	waService.SetMessageHandler(func(ctx context.Context, evt *events.Message) {
		// Only the configured group, when one is set.
		if cfg.GroupID != "" && evt.Info.Chat.String() != cfg.GroupID {
			return
		}
		if evt.Info.IsFromMe {
			return
		}

		text, photoRef := wa.Content(evt)
		if text == "" {
			return
		}

		msg := usecase.IncomingMessage{
			SenderID:   wa.SenderPhone(ctx, evt.Info, lids),
			SenderName: evt.Info.PushName,
			Text:       text,
			PhotoRef:   photoRef,
		}
		log.Debug("message_received",
			zap.String("sender", msg.SenderID),
			zap.String("name", msg.SenderName),
			zap.Bool("photo", photoRef != ""),
		)

		response, err := handleMessageUC.Execute(ctx, msg)
		if err != nil {
			log.Error("handle_message_failed", zap.String("sender", msg.SenderID), zap.Error(err))
			return
		}
		if response == "" {
			return
		}
		if err := waService.Reply(ctx, evt.Info.Chat, response); err != nil {
			log.Error("send_reply_failed", zap.String("chat", evt.Info.Chat.String()), zap.Error(err))
		}
	})

	// 6. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	if err := waService.Initialize(ctx); err != nil {
		log.Fatal("wa_init_failed", zap.Error(err))
	}

	// 7. Connect / Login Logic
	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			// Pair Code Mode: must connect first to pair
			if err := waService.Connect(); err != nil {
				log.Fatal("wa_connect_failed", zap.Error(err))
			}

			log.Info("pairing_with_phone", zap.String("phone", cfg.BotPhone))
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				log.Error("pair_code_failed", zap.Error(err))
			} else {
				log.Info("pair_code", zap.String("code", code),
					zap.String("hint", "WhatsApp > Linked Devices > Link with phone number"))
			}
		} else {
			// QR Code Mode: PrintQR connects after opening the QR channel
			log.Info("printing_qr", zap.String("hint", "BOT_PHONE not set"))
			waService.PrintQR(ctx)
		}
	} else {
		if err := waService.Connect(); err != nil {
			log.Fatal("wa_connect_failed", zap.Error(err))
		}
		log.Info("wa_already_logged_in")
	}

	log.Info("bot_running")

	// 8. Wait for OS Signal
	<-ctx.Done()

	log.Info("shutting_down")
	waService.Disconnect()
}
