package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MulticastLimit is the maximum number of device tokens FCM accepts in a
// single multicast call.
const MulticastLimit = 500

// Sender delivers one push notification to at most MulticastLimit device
// tokens. Invalid tokens in the batch count as failures but do not fail
// the call.
type Sender interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (success, failure int, err error)
}

// FCMSender delivers pushes through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender builds an FCM-backed sender. Credentials come from
// FIREBASE_CREDENTIALS_FILE, or from application-default credentials when
// the variable is unset.
func NewFCMSender(ctx context.Context) (*FCMSender, error) {
	var opts []option.ClientOption
	if path := os.Getenv("FIREBASE_CREDENTIALS_FILE"); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &FCMSender{client: client}, nil
}

// SendMulticast implements Sender
func (s *FCMSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	resp, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		return 0, len(tokens), err
	}
	return resp.SuccessCount, resp.FailureCount, nil
}

// PushService fans a broadcast out to any number of device tokens,
// batching to the platform limit.
type PushService struct {
	sender Sender
}

// NewPushService wraps a Sender. A nil sender disables delivery (broadcasts
// are logged and dropped), which keeps the service bootable without
// Firebase credentials.
func NewPushService(sender Sender) *PushService {
	return &PushService{sender: sender}
}

// Broadcast sends one notification to every token. Each batch is
// dispatched independently: a failed batch is logged and the remaining
// batches still go out.
func (s *PushService) Broadcast(ctx context.Context, tokens []string, title, body string, data map[string]string) {
	if len(tokens) == 0 {
		return
	}
	if s.sender == nil {
		log.Printf("Warning: push delivery disabled, dropping broadcast to %d devices", len(tokens))
		return
	}

	for start := 0; start < len(tokens); start += MulticastLimit {
		end := start + MulticastLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		success, failure, err := s.sender.SendMulticast(ctx, batch, title, body, data)
		if err != nil {
			log.Printf("Error: push batch of %d failed: %v", len(batch), err)
			continue
		}
		log.Printf("Push batch delivered: %d ok, %d failed", success, failure)
	}
}
