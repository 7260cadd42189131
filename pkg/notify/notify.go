// Package notify delivers digest notifications to readers over their chosen channel
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newsdigest/pkg/domain"
)

// ErrRejected marks a send the channel refused, repeating it won't help
var ErrRejected = errors.New("rejected by channel")

// Message is a templated notification, the channel renders it
type Message struct {
	Date   string // digest date the notification is about
	Teaser string
}

// Channel sends a message to a channel specific recipient
type Channel interface {
	Send(ctx context.Context, recipient string, msg Message) error
}

// Sender routes notifications to the user's channel and retries transient failures
type Sender struct {
	channels map[domain.Channel]Channel
	attempts int
	delay    time.Duration
}

// NewSender makes a sender trying each send up to attempts times
func NewSender(attempts int, delay time.Duration) *Sender {
	if attempts < 1 {
		attempts = 1
	}
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Sender{channels: map[domain.Channel]Channel{}, attempts: attempts, delay: delay}
}

// Register adds channel implementation for the given channel identifier
func (s *Sender) Register(id domain.Channel, ch Channel) *Sender {
	s.channels[id] = ch
	return s
}

// Send delivers msg to the user over the user's digest channel and returns the channel used.
// Unknown channels fail with domain.ErrUnsupportedChannel.
func (s *Sender) Send(ctx context.Context, user *domain.User, msg Message) (domain.Channel, error) {
	ch, ok := s.channels[user.DigestChannel]
	if !ok {
		return "", fmt.Errorf("user %d: %w: %q", user.ID, domain.ErrUnsupportedChannel, user.DigestChannel)
	}
	recipient, err := user.Recipient(user.DigestChannel)
	if err != nil {
		return "", fmt.Errorf("resolve recipient: %w", err)
	}

	attempt := 0
	err = repeater.NewBackoff(s.attempts, s.delay, repeater.WithMaxDelay(10*time.Second)).Do(ctx, func() error {
		attempt++
		if err := ch.Send(ctx, recipient, msg); err != nil {
			if !errors.Is(err, ErrRejected) {
				lgr.Printf("[DEBUG] send to user %d over %s, attempt %d: %v", user.ID, user.DigestChannel, attempt, err)
			}
			return err
		}
		return nil
	}, ErrRejected)
	if err != nil {
		return "", fmt.Errorf("send to user %d over %s: %w", user.ID, user.DigestChannel, err)
	}
	return user.DigestChannel, nil
}
