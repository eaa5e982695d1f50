package usersync

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vgwingman/wingman/internal/model"
	"github.com/vgwingman/wingman/internal/store"
)

// Worker periodically pulls approved users from the splash-page waitlist
// endpoint and applies Sync to each record.
type Worker struct {
	st   store.Store
	http *resty.Client
	url  string
	cron *cron.Cron
	log  zerolog.Logger
}

func NewWorker(st store.Store, waitlistURL string, log zerolog.Logger) *Worker {
	return &Worker{
		st:   st,
		http: resty.New(),
		url:  waitlistURL,
		cron: cron.New(),
		log:  log,
	}
}

// Start registers the pull on the given cron schedule (e.g. "@hourly") and
// starts the scheduler. It returns an error only for an invalid schedule.
func (w *Worker) Start(ctx context.Context, schedule string) error {
	if w.url == "" {
		w.log.Info().Msg("waitlist sync disabled, no endpoint configured")
		return nil
	}
	_, err := w.cron.AddFunc(schedule, func() {
		if err := w.Pull(ctx); err != nil {
			w.log.Error().Err(err).Msg("waitlist pull failed")
		}
	})
	if err != nil {
		return errors.Wrapf(err, "waitlist: schedule %q", schedule)
	}
	w.cron.Start()
	w.log.Info().Str("schedule", schedule).Str("url", w.url).Msg("waitlist sync started")
	return nil
}

// Stop halts the scheduler and waits for an in-flight pull to finish.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
}

// Pull fetches the approved-user list once and syncs every record. Per-record
// failures are logged and skipped so one bad record cannot block the rest.
func (w *Worker) Pull(ctx context.Context) error {
	var users []model.SplashUser
	resp, err := w.http.R().
		SetContext(ctx).
		SetResult(&users).
		Get(w.url)
	if err != nil {
		return errors.Wrap(err, "waitlist: fetch approved users")
	}
	if resp.IsError() {
		return errors.Errorf("waitlist: fetch approved users: status %d", resp.StatusCode())
	}

	synced := 0
	for _, u := range users {
		if _, err := Sync(ctx, w.st, u); err != nil {
			w.log.Warn().Err(err).Str("user", u.UserID).Msg("waitlist record skipped")
			continue
		}
		synced++
	}
	w.log.Info().Int("fetched", len(users)).Int("synced", synced).Msg("waitlist pull complete")
	return nil
}
