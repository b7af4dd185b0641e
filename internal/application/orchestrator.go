package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/slack-now-playing/internal/domain"
	"github.com/bnema/slack-now-playing/internal/notify"
	"github.com/bnema/slack-now-playing/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval    = 10 * time.Second
	DefaultRefreshInterval = 30 * time.Minute
	DefaultShutdownTimeout = 5 * time.Second
)

var (
	ErrAlreadyStarted      = errors.New("orchestrator already started")
	ErrMissingDependency   = errors.New("missing orchestrator dependency")
	ErrMissingRefreshToken = errors.New("no refresh token")
)

// Events carries the two notifications of the login and refresh lifecycle.
type Events struct {
	Authenticated  notify.Topic[domain.TokenBundle]
	TokenRefreshed notify.Topic[domain.TokenBundle]
}

type OrchestratorConfig struct {
	Music    ports.MusicService
	Chat     ports.ChatProfile
	Images   ports.ImageFetcher
	Reporter ports.StatusReporter
	Listener ports.Listener
	Events   *Events
	Clock    ports.Clock
	Logger   *zap.Logger

	Emoji            string
	PlaceholderImage string
	PollInterval     time.Duration
	RefreshInterval  time.Duration
	ShutdownTimeout  time.Duration
}

type tickerFunc func(interval time.Duration) (<-chan time.Time, func())

// Orchestrator owns the access token, the previous track slot and both timers.
type Orchestrator struct {
	music    ports.MusicService
	chat     ports.ChatProfile
	images   ports.ImageFetcher
	reporter ports.StatusReporter
	listener ports.Listener
	events   *Events
	clock    ports.Clock
	logger   *zap.Logger

	emoji           string
	placeholder     string
	pollInterval    time.Duration
	refreshInterval time.Duration
	shutdownTimeout time.Duration
	newTicker       tickerFunc
	authenticatedCh chan domain.TokenBundle
	polling         atomic.Bool
	refreshing      atomic.Bool
	background      sync.WaitGroup
	mu              sync.RWMutex
	state           domain.LoopState
	refreshToken    string
	previousTrack   *domain.PlaybackSnapshot
}

func NewOrchestrator(cfg OrchestratorConfig) (*Orchestrator, error) {
	if cfg.Music == nil || cfg.Chat == nil || cfg.Images == nil {
		return nil, ErrMissingDependency
	}
	if cfg.Events == nil {
		cfg.Events = &Events{}
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Emoji == "" {
		cfg.Emoji = domain.DefaultStatusEmoji
	}
	if cfg.PlaceholderImage == "" {
		cfg.PlaceholderImage = domain.DefaultPlaceholderImage
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	o := &Orchestrator{
		music:           cfg.Music,
		chat:            cfg.Chat,
		images:          cfg.Images,
		reporter:        cfg.Reporter,
		listener:        cfg.Listener,
		events:          cfg.Events,
		clock:           cfg.Clock,
		logger:          cfg.Logger,
		emoji:           cfg.Emoji,
		placeholder:     cfg.PlaceholderImage,
		pollInterval:    cfg.PollInterval,
		refreshInterval: cfg.RefreshInterval,
		shutdownTimeout: cfg.ShutdownTimeout,
		newTicker:       systemTicker,
		authenticatedCh: make(chan domain.TokenBundle, 1),
		state:           domain.StateAwaitingLogin,
	}

	o.events.Authenticated.Subscribe(o.onAuthenticated)
	o.events.TokenRefreshed.Subscribe(o.onTokenRefreshed)

	return o, nil
}

func systemTicker(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

func (o *Orchestrator) State() domain.LoopState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// PreviousTrack returns the id of the last track whose artwork became the
// profile photo.
func (o *Orchestrator) PreviousTrack() domain.TrackID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.previousTrack == nil {
		return ""
	}
	return o.previousTrack.TrackID
}

// Run waits for the first login, starts the timers and blocks until ctx is
// done. A canceled wait for login is a clean exit.
func (o *Orchestrator) Run(ctx context.Context) error {
	bundle, err := o.AwaitLogin(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	if err := o.Start(ctx, bundle); err != nil {
		return err
	}

	<-ctx.Done()
	o.background.Wait()
	o.logger.Debug("orchestrator stopped")
	return nil
}

// AwaitLogin blocks until an authenticated event arrives.
func (o *Orchestrator) AwaitLogin(ctx context.Context) (domain.TokenBundle, error) {
	select {
	case bundle := <-o.authenticatedCh:
		return bundle, nil
	case <-ctx.Done():
		return domain.TokenBundle{}, ctx.Err()
	}
}

// Start moves the loop from awaiting login to polling. The refresh timer is
// armed first, then one update runs, then the poll timer is armed, then the
// redirect listener is shut down.
func (o *Orchestrator) Start(ctx context.Context, bundle domain.TokenBundle) error {
	o.mu.Lock()
	if o.state == domain.StatePolling {
		o.mu.Unlock()
		return ErrAlreadyStarted
	}
	o.state = domain.StatePolling
	o.refreshToken = bundle.RefreshToken
	o.mu.Unlock()

	o.music.SetAccessToken(bundle.AccessToken)
	o.logToken("logged in", bundle)

	o.every(ctx, o.refreshInterval, &o.refreshing, "refresh", o.RefreshToken)

	if err := o.UpdateStatus(ctx); err != nil {
		o.logFailure("status update failed", err)
	}

	o.every(ctx, o.pollInterval, &o.polling, "poll", o.UpdateStatus)

	if o.listener != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.shutdownTimeout)
		defer cancel()
		if err := o.listener.Shutdown(shutdownCtx); err != nil {
			o.logger.Warn("failed to stop redirect listener", zap.Error(err))
		}
	}

	return nil
}

// every runs fn on each tick in its own goroutine. A tick arriving while the
// previous run still holds inFlight is skipped.
func (o *Orchestrator) every(ctx context.Context, interval time.Duration, inFlight *atomic.Bool, name string, fn func(context.Context) error) {
	ticks, stop := o.newTicker(interval)

	o.background.Add(1)
	go func() {
		defer o.background.Done()
		defer stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
			}

			if !inFlight.CompareAndSwap(false, true) {
				o.logger.Debug("previous run still in flight, skipping tick", zap.String("timer", name))
				continue
			}

			o.background.Add(1)
			go func() {
				defer o.background.Done()
				defer inFlight.Store(false)
				if err := fn(ctx); err != nil && ctx.Err() == nil {
					o.logFailure(name+" failed", err)
				}
			}()
		}
	}()
}

// UpdateStatus pushes the current track to the chat status and swaps the
// profile photo when the track changed since the last successful swap.
func (o *Orchestrator) UpdateStatus(ctx context.Context) error {
	snapshot, err := o.music.CurrentlyPlaying(ctx)
	if err != nil {
		return fmt.Errorf("get currently playing: %w", err)
	}

	if snapshot == nil {
		o.logger.Info("Play something dude!")
		if err := o.chat.SetStatus(ctx, o.emoji, domain.NothingPlayingText); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
		o.report(nil, domain.NothingPlayingText)
		return nil
	}

	status := domain.FormatStatus(*snapshot)
	if err := o.chat.SetStatus(ctx, o.emoji, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	o.report(snapshot, status)

	if !o.trackChanged(snapshot.TrackID) {
		return nil
	}

	photo, err := o.updatePhoto(ctx, *snapshot)
	if err != nil {
		return fmt.Errorf("update profile photo: %w", err)
	}

	o.mu.Lock()
	current := *snapshot
	o.previousTrack = &current
	o.mu.Unlock()

	o.logger.Info("Updated profile picture",
		zap.String("track_id", string(snapshot.TrackID)),
		zap.String("photo_id", photo.ID),
	)
	return nil
}

func (o *Orchestrator) trackChanged(id domain.TrackID) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.previousTrack == nil || o.previousTrack.TrackID != id
}

func (o *Orchestrator) updatePhoto(ctx context.Context, snapshot domain.PlaybackSnapshot) (domain.Photo, error) {
	image, err := o.images.Fetch(ctx, snapshot.ArtworkURL(o.placeholder))
	if err != nil {
		return domain.Photo{}, err
	}

	uploaded, err := o.chat.UploadPhoto(ctx, image)
	if err != nil {
		return domain.Photo{}, err
	}

	return o.chat.SetProfilePhoto(ctx, uploaded.ID, domain.CropRect{})
}

func (o *Orchestrator) report(snapshot *domain.PlaybackSnapshot, status string) {
	if o.reporter == nil {
		return
	}
	o.reporter.Report(snapshot, status)
}

// RefreshToken trades the current refresh token for a new bundle and
// publishes it as a token refreshed event.
func (o *Orchestrator) RefreshToken(ctx context.Context) error {
	o.mu.RLock()
	current := o.refreshToken
	o.mu.RUnlock()

	if current == "" {
		return ErrMissingRefreshToken
	}

	bundle, err := o.music.Refresh(ctx, current)
	if err != nil {
		return err
	}

	o.events.TokenRefreshed.Publish(bundle.WithRefreshFallback(current))
	return nil
}

func (o *Orchestrator) onAuthenticated(bundle domain.TokenBundle) {
	select {
	case o.authenticatedCh <- bundle:
	default:
		o.logger.Debug("login already pending, ignoring authenticated event")
	}
}

func (o *Orchestrator) onTokenRefreshed(bundle domain.TokenBundle) {
	o.music.SetAccessToken(bundle.AccessToken)

	o.mu.Lock()
	if bundle.RefreshToken != "" {
		o.refreshToken = bundle.RefreshToken
	}
	o.mu.Unlock()

	o.logToken("access token refreshed", bundle)
}

func (o *Orchestrator) logToken(msg string, bundle domain.TokenBundle) {
	fields := []zap.Field{zap.String("scope", bundle.Scope)}
	if expiresAt := bundle.ExpiresAt(o.clock.Now()); !expiresAt.IsZero() {
		fields = append(fields, zap.Time("expires_at", expiresAt))
	}
	o.logger.Info(msg, fields...)
}

func (o *Orchestrator) logFailure(msg string, err error) {
	switch {
	case domain.IsAuthError(err), domain.IsConfigError(err):
		o.logger.Error(msg, zap.Error(err))
	default:
		o.logger.Warn(msg, zap.Error(err))
	}
}
