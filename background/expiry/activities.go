package expiry

import (
	"context"

	"go.uber.org/cadence/activity"
	"go.uber.org/zap"

	"github.com/bitmark-inc/autonomy-nearby/schema"
)

// ExpiryResult tells whether a request ended by expiry, whoever stored the
// transition
type ExpiryResult struct {
	AuthorID string `json:"author_id"`
	Expired  bool   `json:"expired"`
}

// ExpireHelpActivity sweeps a single help request. A request already
// expired by the periodic sweep still counts as expired.
func (h *HelpExpiryWorker) ExpireHelpActivity(ctx context.Context, helpID string) (ExpiryResult, error) {
	help, swept, err := h.registry.Expire(ctx, helpID)
	if err != nil {
		return ExpiryResult{}, err
	}

	activity.GetLogger(ctx).Info("help request swept",
		zap.String("helpID", helpID),
		zap.String("status", string(help.Status)),
		zap.Bool("swept", swept))

	return ExpiryResult{
		AuthorID: help.AuthorID,
		Expired:  help.Status == schema.HelpExpired,
	}, nil
}

// NotifyHelpExpiredActivity tells the author that a request expired
func (h *HelpExpiryWorker) NotifyHelpExpiredActivity(ctx context.Context, authorID, helpID string) error {
	return h.NotifyHelpExpired(ctx, authorID, helpID)
}
