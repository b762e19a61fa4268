// Package server serves radix requests over TCP, one connection at a time.
//
// A client connects, writes one request line and reads the response until
// the server closes the connection. The request ends at the first newline
// or when the client closes its side of the connection.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/radix/internal/protocol"
	"github.com/govalues/radix/internal/service"
	"github.com/pires/go-proxyproto"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Handler answers a request line.
type Handler interface {
	Handle(ctx context.Context, line string) string
}

// Options configures a Server.
type Options struct {
	// MaxRequestBytes bounds a request. Zero means protocol.MaxRequestBytes.
	MaxRequestBytes int
	// ReadTimeout bounds the time spent reading a request. Zero means no limit.
	ReadTimeout time.Duration
	// Limiter rejects connections arriving faster than it allows. Nil means no limit.
	Limiter *rate.Limiter
	// ProxyProtocol accepts a PROXY protocol header in front of each request
	// and logs the client address it carries.
	ProxyProtocol bool
	Logger        *logrus.Logger
}

// Server is a serial TCP request server.
type Server struct {
	h           Handler
	maxBytes    int
	readTimeout time.Duration
	limiter     *rate.Limiter
	proxy       bool
	log         *logrus.Logger
}

var errTooLarge = errors.New("request too large")

// New returns a Server that answers requests with h.
func New(h Handler, opts Options) *Server {
	s := &Server{
		h:           h,
		maxBytes:    opts.MaxRequestBytes,
		readTimeout: opts.ReadTimeout,
		limiter:     opts.Limiter,
		proxy:       opts.ProxyProtocol,
		log:         opts.Logger,
	}
	if s.maxBytes <= 0 {
		s.maxBytes = protocol.MaxRequestBytes
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	return s
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %v: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done and answers each one
// before accepting the next. It closes ln and returns nil when ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.proxy {
		ln = &proxyproto.Listener{Listener: ln, ReadHeaderTimeout: s.readTimeout}
	}
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	s.log.WithFields(logrus.Fields{"addr": ln.Addr().String()}).Info("Waiting for connections")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.log.WithFields(logrus.Fields{"error": err}).Warn("Accept failed")
			continue
		}
		s.serveConn(ctx, conn)
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	id := uuid.NewString()
	ctx = service.WithRequestID(ctx, id)
	log := s.log.WithFields(logrus.Fields{"request_id": id, "remote": conn.RemoteAddr().String()})

	start := time.Now()
	line, err := s.readRequest(conn)
	var resp string
	switch {
	case err != nil:
		log.WithFields(logrus.Fields{"error": err}).Info("Reading request failed")
		resp = protocol.FormatError(err.Error())
	case s.limiter != nil && !s.limiter.Allow():
		log.Warn("Rate limit exceeded")
		resp = protocol.FormatError("rate limit exceeded")
	default:
		resp = s.h.Handle(ctx, line)
		log.WithFields(logrus.Fields{
			"duration": time.Since(start),
			"failed":   protocol.IsError(resp),
		}).Info("Request served")
	}

	if _, err := io.WriteString(conn, resp+"\n"); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Warn("Writing response failed")
	}
}

// readRequest reads up to the first newline or the end of input.
func (s *Server) readRequest(conn net.Conn) (string, error) {
	if s.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return "", fmt.Errorf("setting read deadline: %w", err)
		}
	}
	r := bufio.NewReader(io.LimitReader(conn, int64(s.maxBytes)+1))
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading request: %w", err)
	}
	if len(line) > s.maxBytes {
		discard(conn)
		return "", fmt.Errorf("request exceeds %v bytes: %w", s.maxBytes, errTooLarge)
	}
	return line, nil
}

// discard drains what the client already sent so that closing the
// connection does not reset it before the response is read.
func discard(conn net.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, protocol.MaxRequestBytes))
}
