// Package server binds the listener, prints the startup banner and runs the
// HTTP accept loop until its context is cancelled.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"portfolio-server/internal/config"
	"portfolio-server/internal/filesystem"
	"portfolio-server/internal/lock"
	"portfolio-server/internal/netaddr"
	"portfolio-server/internal/service"
	"portfolio-server/internal/transport"

	"github.com/pkg/errors"
)

const defaultReadHeaderTimeout = 60 * time.Second

// ErrPortInUse is matched by errors.Is when the listening port is taken.
var ErrPortInUse = errors.New("address already in use")

// PortInUseError reports a bind collision. When the port is held by another
// instance of this server, HeldByInstance is set and HolderPID names it if
// the PID was recorded.
type PortInUseError struct {
	Port           int
	HeldByInstance bool
	HolderPID      int
	Err            error
}

func (e *PortInUseError) Error() string {
	return fmt.Sprintf("port %d is already in use", e.Port)
}

// Is makes errors.Is(err, ErrPortInUse) true.
func (e *PortInUseError) Is(target error) bool {
	return target == ErrPortInUse
}

func (e *PortInUseError) Unwrap() error {
	return e.Err
}

// Server is one running portfolio server.
type Server struct {
	cfg        *config.Config
	out        io.Writer
	locks      *lock.LockManager
	localIP    func() string
	httpServer *http.Server
	listener   net.Listener
	instance   *lock.InstanceLock
}

// Option customizes a Server.
type Option func(*Server)

// WithLockManager replaces the instance lock manager (default: os.TempDir()).
func WithLockManager(lm *lock.LockManager) Option {
	return func(s *Server) { s.locks = lm }
}

// New validates cfg and wires the listing service, the static file handler
// and the router. Banner and status lines go to out.
func New(cfg *config.Config, out io.Writer, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	listing, err := service.NewDefaultListingService(filesystem.NewDefaultFileSystemAdapter(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize listing service")
	}
	router := transport.NewRouter(listing, transport.NewStaticHandler(cfg.RootDirectory))

	s := &Server{
		cfg:     cfg,
		out:     out,
		locks:   lock.NewLockManager(""),
		localIP: netaddr.LocalIP,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Listen binds the configured address with address reuse enabled.
func (s *Server) Listen() error {
	addr := s.cfg.Addr()
	network := "tcp"
	if ip := net.ParseIP(s.cfg.BindAddress); ip != nil && ip.To4() != nil {
		network = "tcp4"
	}

	lc := net.ListenConfig{Control: reuseAddrControl}
	ln, err := lc.Listen(context.Background(), network, addr)
	if err != nil {
		if isAddrInUse(err) {
			pid, held := s.locks.Holder(s.cfg.Port)
			return &PortInUseError{Port: s.cfg.Port, HeldByInstance: held, HolderPID: pid, Err: err}
		}
		return errors.Wrapf(err, "unable to listen on %s", addr)
	}
	s.listener = ln

	instance, err := s.locks.AcquireInstanceLock(s.Port())
	if err != nil {
		log.Printf("Warning: could not take instance lock for port %d: %v", s.Port(), err)
	} else {
		s.instance = instance
	}
	return nil
}

// Addr returns the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound port, or the configured one before Listen.
func (s *Server) Port() int {
	if tcpAddr, ok := s.Addr().(*net.TCPAddr); ok {
		return tcpAddr.Port
	}
	return s.cfg.Port
}

// WriteBanner prints the startup banner with the loopback and LAN URLs.
func (s *Server) WriteBanner() {
	port := strconv.Itoa(s.Port())
	networkURL := "http://" + net.JoinHostPort(s.localIP(), port)
	Banner{
		LocalURL:   "http://localhost:" + port,
		NetworkURL: networkURL,
		RootDir:    s.cfg.RootDirectory,
		Port:       s.Port(),
	}.Write(s.out)
	writeStarted(s.out, s.Port(), networkURL)
}

// Serve runs the accept loop on the bound listener until ctx is cancelled.
// Cancellation closes the server at once; in-flight requests are not drained.
// It returns nil on cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	defer s.releaseInstanceLock()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutdown requested, closing HTTP server.")
		if err := s.httpServer.Close(); err != nil {
			log.Printf("HTTP server close error: %v", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server stopped")
	}
}

func (s *Server) releaseInstanceLock() {
	if s.instance == nil {
		return
	}
	if err := s.locks.ReleaseLock(s.instance); err != nil {
		log.Printf("Warning: %v", err)
	}
	s.instance = nil
}

// Run binds, prints the banner and serves until ctx is cancelled.
// A port collision is returned as a *PortInUseError.
func Run(ctx context.Context, cfg *config.Config, out io.Writer, opts ...Option) error {
	s, err := New(cfg, out, opts...)
	if err != nil {
		return err
	}
	if err := s.Listen(); err != nil {
		return err
	}
	s.WriteBanner()
	return s.Serve(ctx)
}
