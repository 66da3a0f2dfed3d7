package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/storage"
)

// shutdownTimeout bounds how long open sessions get to finish on shutdown.
const shutdownTimeout = 10 * time.Second

// SSHServer serves the game over SSH with Wish. Every SSH user plays
// with their own progress profile in the shared database. Sessions of the
// same profile share one progress.Store.
type SSHServer struct {
	config config.Config
	server *ssh.Server
	store  *storage.Store
	assets render.AtlasSource
	logger *log.Logger

	mu       sync.Mutex
	profiles map[string]*profileEntry
	sessions map[string]*liveSession
}

// profileEntry is a progress store shared by the open sessions of a profile.
type profileEntry struct {
	store    *progress.Store
	sessions int
}

// liveSession is a game model whose SSH session has not ended yet.
type liveSession struct {
	model   *Model
	profile string
}

// sessionIDKey is the ssh.Context key holding the game session ID.
type sessionIDKey struct{}

// NewSSHServer creates a server. The store and assets are shared by all
// sessions; the caller keeps ownership of the store.
func NewSSHServer(cfg config.Config, store *storage.Store, assets render.AtlasSource, logger *log.Logger) (*SSHServer, error) {
	srv := newSSHServer(cfg, store, assets, logger)

	hostKeyPath := cfg.SSH.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".pixelisland", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// newSSHServer creates a server without a listener.
func newSSHServer(cfg config.Config, store *storage.Store, assets render.AtlasSource, logger *log.Logger) *SSHServer {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pixelisland-ssh",
		})
	}
	return &SSHServer{
		config:   cfg,
		store:    store,
		assets:   assets,
		logger:   logger,
		profiles: make(map[string]*profileEntry),
		sessions: make(map[string]*liveSession),
	}
}

var profileUnsafe = regexp.MustCompile(`[^a-z0-9_.-]+`)

// ProfileName turns an SSH user name into a progress profile name.
func ProfileName(user string) string {
	p := profileUnsafe.ReplaceAllString(strings.ToLower(user), "_")
	p = strings.Trim(p, "_.")
	if p == "" {
		return "guest"
	}
	return p
}

// teaHandler creates a game model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "Pixel Island needs a terminal: connect with ssh -t")
		return nil, nil
	}

	id, _ := sess.Context().Value(sessionIDKey{}).(string)
	if id == "" {
		id = uuid.NewString()
	}
	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	model, err := s.startSession(id, sess.User(), rt, bubbletea.MakeRenderer(sess))
	if err != nil {
		wish.Fatalln(sess, "cannot start game:", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionMiddleware ends the game once the program has exited, whether
// the player quit, the connection dropped, the session idled out or the
// server shut down.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := uuid.NewString()
		sess.Context().SetValue(sessionIDKey{}, id)
		next(sess)
		s.endSession(id)
	}
}

// startSession creates the model for session id, backed by the shared
// store of the user's profile.
func (s *SSHServer) startSession(id, user string, rt core.RuntimeConfig, renderer *lipgloss.Renderer) (*Model, error) {
	profile := ProfileName(user)
	logger := s.logger.With("session", id, "user", user, "profile", profile)

	model, err := NewModel(Options{
		Config:   s.config,
		Runtime:  rt,
		Assets:   s.assets,
		Progress: s.acquireProfile(profile),
		Logger:   logger,
		Renderer: renderer,
	})
	if err != nil {
		s.releaseProfile(profile)
		logger.Error("cannot start game", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = &liveSession{model: model, profile: profile}
	s.mu.Unlock()
	return model, nil
}

// endSession stops the game of session id, recording its play time, and
// drops the profile store once its last session is gone. Unknown IDs are
// ignored.
func (s *SSHServer) endSession(id string) {
	s.mu.Lock()
	live, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	live.model.Close()
	s.releaseProfile(live.profile)
}

// acquireProfile returns the profile's shared store, loading it for the
// first session.
func (s *SSHServer) acquireProfile(profile string) *progress.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.profiles[profile]
	if !ok {
		e = &profileEntry{
			store: progress.NewStore(s.store.Backend(profile), s.logger.With("profile", profile)),
		}
		s.profiles[profile] = e
	}
	e.sessions++
	return e.store
}

func (s *SSHServer) releaseProfile(profile string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.profiles[profile]
	if !ok {
		return
	}
	e.sessions--
	if e.sessions <= 0 {
		delete(s.profiles, profile)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.SSH.Address)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSH.Address
}
