package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AleksMarkov/LumenTask-server/internal/audit"
	"github.com/AleksMarkov/LumenTask-server/internal/mailer"
	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
	"github.com/AleksMarkov/LumenTask-server/pkg/log"
)

// supportServiceImpl implements SupportService.
type supportServiceImpl struct {
	sender         mailer.Sender
	supportAddress string
}

// NewSupportService creates a new support email service.
func NewSupportService(sender mailer.Sender, supportAddress string) SupportService {
	return &supportServiceImpl{
		sender:         sender,
		supportAddress: supportAddress,
	}
}

// SendHelpEmail sends the acknowledgement to the requester and the
// notification to the support address. The two sends are independent: both
// are always attempted, and the operation fails if either send failed.
func (s *supportServiceImpl) SendHelpEmail(ctx context.Context, displayName, replyEmail, comment string) error {
	l := log.Ctx(ctx)

	ack := mailer.Message{
		To:      replyEmail,
		Subject: "Need help",
		HTMLBody: fmt.Sprintf(
			"<p>Dear %s,<br>"+
				"We thank you for your email.<br>"+
				"<br>"+
				"Best regards,<br>"+
				"LumenTask Support Team</p>",
			displayName),
	}

	notification := mailer.Message{
		To:      s.supportAddress,
		Subject: "Support notification",
		HTMLBody: fmt.Sprintf(
			"<p>Dear Team,<br>"+
				"<br>"+
				"The customer %s has sent you a help email.<br>"+
				"Comment from the user: %s<br>"+
				"Email for reply: %s.<br>"+
				"<br>"+
				"Best regards,<br>"+
				"LumenTask Support Team</p>",
			displayName, comment, replyEmail),
	}

	ackErr := s.sender.Send(ctx, ack)
	if ackErr != nil {
		l.Error().Err(ackErr).Str("to", replyEmail).Msg("failed to send acknowledgement email")
	}

	notifErr := s.sender.Send(ctx, notification)
	if notifErr != nil {
		l.Error().Err(notifErr).Str("to", s.supportAddress).Msg("failed to send support notification")
	}

	if ackErr != nil || notifErr != nil {
		return apperr.Upstream("failed to send support email", errors.Join(ackErr, notifErr))
	}

	audit.LogWithDetail(ctx, audit.ActionHelpEmail, "", replyEmail, "help email sent")

	return nil
}
