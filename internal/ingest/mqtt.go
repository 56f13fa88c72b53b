package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/harshit001122/Tracking-system/internal/shared/location"
	"github.com/harshit001122/Tracking-system/internal/tracking"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Topic carries device samples; the middle level is the tracking session id.
const Topic = "fieldtrack/sessions/+/location"

const (
	connectTimeout = 10 * time.Second
	appendTimeout  = 5 * time.Second
)

// LocationSink is the part of the tracking service the subscriber feeds.
type LocationSink interface {
	AppendLocation(ctx context.Context, sessionID string, in *location.Input) (tracking.Session, error)
}

// Subscriber appends location samples published by field devices to their
// tracking sessions.
type Subscriber struct {
	client mqtt.Client
	sink   LocationSink
}

func NewSubscriber(brokerURL, clientID string, sink LocationSink) *Subscriber {
	s := &Subscriber{sink: sink}
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetOrderMatters(false).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			slog.Warn("mqtt connection lost", "error", err)
		}).
		SetOnConnectHandler(s.subscribe)
	s.client = mqtt.NewClient(opts)
	return s
}

// Start connects to the broker. Subscriptions are (re)established on every
// successful connect.
func (s *Subscriber) Start() error {
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.New("mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

func (s *Subscriber) Close() {
	s.client.Disconnect(250)
}

func (s *Subscriber) subscribe(c mqtt.Client) {
	token := c.Subscribe(Topic, 1, s.handle)
	token.Wait()
	if err := token.Error(); err != nil {
		slog.Error("mqtt subscribe failed", "topic", Topic, "error", err)
		return
	}
	slog.Info("mqtt subscribed", "topic", Topic)
}

func (s *Subscriber) handle(_ mqtt.Client, msg mqtt.Message) {
	sessionID, ok := sessionFromTopic(msg.Topic())
	if !ok {
		slog.Warn("mqtt message on unexpected topic", "topic", msg.Topic())
		return
	}

	var in location.Input
	if err := json.Unmarshal(msg.Payload(), &in); err != nil {
		slog.Warn("mqtt payload rejected", "session_id", sessionID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	session, err := s.sink.AppendLocation(ctx, sessionID, &in)
	if err != nil {
		slog.Warn("mqtt sample dropped", "session_id", sessionID, "error", err)
		return
	}
	slog.Debug("mqtt sample appended", "session_id", sessionID, "points", len(session.Route))
}

func sessionFromTopic(topic string) (string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != "fieldtrack" || parts[1] != "sessions" || parts[3] != "location" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
