// internal/chat/feed.go
//
// Websocket client for the live chat connector. The connector (e.g. a
// TikTok Live bridge on port 62024) pushes frames of the form
//
//	{"event":"chat","data":{"uniqueId":"...","nickname":"...",
//	 "comment":"...","profilePictureUrl":"..."}}
//
// The feed decodes them and forwards valid events, in arrival order, to
// a single registered handler. One reader goroutine per connection
// keeps that ordering guarantee. Malformed payloads are dropped with a
// debug log and never reach the game engine.
//
// Connection lifecycle is best-effort: on any error the feed waits and
// redials. Messages sent while disconnected are lost upstream; the
// engine is never told.

package chat

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const reconnectDelay = 5 * time.Second

// Handler consumes decoded chat events.
type Handler func(Event)

// Feed reads the connector's websocket stream.
type Feed struct {
	url     string
	handler Handler
	logger  zerolog.Logger
	dialer  *websocket.Dialer
}

// NewFeed builds a feed for the given address. A bare "host:port" is
// accepted and normalized to a ws:// URL.
func NewFeed(addr string, logger zerolog.Logger) *Feed {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimPrefix(addr, "ws://")
	addr = strings.TrimPrefix(addr, "wss://")
	return &Feed{
		url:    "ws://" + addr,
		logger: logger,
		dialer: websocket.DefaultDialer,
	}
}

// Subscribe registers the single active handler. Must be called before
// Run.
func (f *Feed) Subscribe(h Handler) {
	f.handler = h
}

// Run dials and reads until ctx is cancelled, redialing after errors.
func (f *Feed) Run(ctx context.Context) {
	for {
		if err := f.readOnce(ctx); err != nil && ctx.Err() == nil {
			f.logger.Warn().Err(err).Str("url", f.url).Msg("chat feed disconnected")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// readOnce holds one connection open and pumps messages until it fails.
func (f *Feed) readOnce(ctx context.Context) error {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	f.logger.Info().Str("url", f.url).Msg("chat feed connected")

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		f.dispatch(data)
	}
}

// wireMessage is the connector frame envelope.
type wireMessage struct {
	Event string `json:"event"`
	Data  struct {
		UniqueID          string `json:"uniqueId"`
		Nickname          string `json:"nickname"`
		Comment           string `json:"comment"`
		ProfilePictureURL string `json:"profilePictureUrl"`
	} `json:"data"`
}

// dispatch decodes one frame and hands it to the handler. Non-chat
// frames are ignored; chat frames missing required fields are dropped.
func (f *Feed) dispatch(data []byte) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		f.logger.Debug().Err(err).Msg("chat frame not decodable, dropped")
		return
	}
	if msg.Event != "chat" {
		return
	}
	if msg.Data.UniqueID == "" || msg.Data.Comment == "" {
		f.logger.Debug().Str("uniqueId", msg.Data.UniqueID).Msg("malformed chat frame dropped")
		return
	}
	if f.handler == nil {
		return
	}
	f.handler(Event{
		ID:            uuid.NewString(),
		ParticipantID: msg.Data.UniqueID,
		DisplayName:   msg.Data.Nickname,
		AvatarURL:     msg.Data.ProfilePictureURL,
		Text:          msg.Data.Comment,
		ReceivedAt:    time.Now(),
	})
}
