// Package usersync reconciles splash-page waitlist records with the user
// store, both on demand and on a cron schedule.
package usersync

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
)

// proSignupDeadline is the cutoff for the early-adopter pro tier: accounts
// created on or before this instant get pro access when approved.
var proSignupDeadline = time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)

// Sync creates or updates a user account from a splash-page record. Approval
// is taken from the record as-is; pro access is always re-derived from the
// account's creation time against the signup deadline. A waitlist position is
// only meaningful while the user is unapproved, so approval clears it.
func Sync(ctx context.Context, st store.Store, acct model.SplashUser) (*model.UserProgress, error) {
	if acct.UserID == "" {
		return nil, errors.New("sync: userId required")
	}

	existing, err := st.Users().FindOrCreate(ctx, acct.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "sync: resolve user")
	}

	p := *existing
	if acct.Email != "" {
		email := acct.Email
		p.Email = &email
	}
	p.IsApproved = acct.IsApproved
	p.HasProAccess = acct.IsApproved && !existing.CreatedAt.After(proSignupDeadline)
	if acct.IsApproved {
		p.WaitlistPosition = nil
	} else {
		pos := acct.Position
		p.WaitlistPosition = &pos
	}

	out, err := st.Users().UpsertAccount(ctx, &p)
	if err != nil {
		return nil, errors.Wrap(err, "sync: upsert account")
	}
	return out, nil
}
