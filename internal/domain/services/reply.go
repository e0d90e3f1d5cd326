package services

import (
	"context"
	"sync/atomic"

	"honeypot-lab/internal/domain/models"
)

// ReplyGenerator produces the next message to send back to the scammer.
// Implementations see only the inbound text and the derived urgency level,
// never the accumulated intelligence.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, text string, urgency models.UrgencyLevel) (string, error)
}

// StallReplyGenerator is the bundled generator: it cycles through canned
// stall messages that buy time and keep the scammer talking. External
// generative backends plug in through the ReplyGenerator interface.
type StallReplyGenerator struct {
	replies []string
	next    atomic.Uint64
}

var defaultStallReplies = []string{
	"sir please wait... my phone is hanging...",
	"bro hold on... network issue...",
	"one minute sir... i am trying...",
	"sir link is not opening... showing error...",
	"bhai wait... otp not coming...",
}

// NewStallReplyGenerator creates a stall generator. With no replies given
// the built-in set is used.
func NewStallReplyGenerator(replies ...string) *StallReplyGenerator {
	if len(replies) == 0 {
		replies = defaultStallReplies
	}
	return &StallReplyGenerator{replies: replies}
}

// GenerateReply returns the next stall message in rotation
func (g *StallReplyGenerator) GenerateReply(_ context.Context, _ string, _ models.UrgencyLevel) (string, error) {
	n := g.next.Add(1) - 1
	return g.replies[n%uint64(len(g.replies))], nil
}
