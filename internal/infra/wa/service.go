package wa

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/ecoplay/internal/logger"
)

type MessageHandler func(ctx context.Context, evt *events.Message)

// ReplyOptions makes the bot look less instant: a random delay between
// MinDelay and MaxDelay, optionally with a typing indicator.
type ReplyOptions struct {
	MinDelay   time.Duration
	MaxDelay   time.Duration
	ShowTyping bool
}

func (o ReplyOptions) delay() time.Duration {
	d := o.MinDelay
	if o.MaxDelay > o.MinDelay {
		d += time.Duration(rand.Int63n(int64(o.MaxDelay-o.MinDelay) + 1))
	}
	return d
}

type Service struct {
	client         *whatsmeow.Client
	dbPath         string
	log            *zap.Logger
	replies        ReplyOptions
	messageHandler MessageHandler
}

func NewService(dbPath string, log *zap.Logger, replies ReplyOptions) *Service {
	return &Service{
		dbPath:  dbPath,
		log:     log,
		replies: replies,
	}
}

func (s *Service) Initialize(ctx context.Context) error {
	// whatsmeow keeps its device store in the same SQLite file as the collections.
	dbAddress := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbPath)
	container, err := sqlstore.New(ctx, "sqlite", dbAddress, logger.WA(s.log, "Database"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, logger.WA(s.log, "Client"))
	s.registerEventHandlers()

	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) registerEventHandlers() {
	s.client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Message:
			if s.messageHandler != nil {
				go s.messageHandler(context.Background(), v)
			}
		case *events.Connected:
			s.log.Info("wa_connected")
		case *events.LoggedOut:
			s.log.Warn("wa_logged_out", zap.Any("reason", v.Reason))
		}
	})
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}

	// Ensure connected before pairing
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}

	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and prints login QR codes until the login completes.
func (s *Service) PrintQR(ctx context.Context) {
	if s.client.Store.ID != nil {
		return
	}
	qrChan, _ := s.client.GetQRChannel(ctx)
	if err := s.client.Connect(); err != nil {
		s.log.Error("wa_connect_for_qr_failed", zap.Error(err))
		return
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			s.log.Info("wa_qr_code", zap.String("code", evt.Code))
		} else {
			s.log.Info("wa_login_event", zap.String("event", evt.Event))
		}
	}
}

// Reply sends text to chat after the configured human-like delay.
func (s *Service) Reply(ctx context.Context, chat types.JID, text string) error {
	if delay := s.replies.delay(); delay > 0 {
		if s.replies.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
		}

		s.log.Debug("reply_delayed", zap.Duration("delay", delay))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if s.replies.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
		}
	}

	_, err := s.client.SendMessage(ctx, chat, &waE2E.Message{Conversation: &text})
	return err
}
