package httpserver

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	s := New(":8080", okHandler(), WithReadHeaderTimeout(3*time.Second), WithMaxConnections(5))
	if s == nil {
		t.Fatal("New returned nil")
	}
	if s.httpServer == nil {
		t.Fatal("httpServer is nil")
	}
	if s.handler == nil {
		t.Error("handler is nil")
	}
	if s.httpServer.ReadHeaderTimeout != 3*time.Second {
		t.Errorf("ReadHeaderTimeout = %v, want 3s", s.httpServer.ReadHeaderTimeout)
	}
	if s.httpServer.WriteTimeout != 0 {
		t.Error("WriteTimeout must stay unset for event streams")
	}
	if s.maxConnections != 5 {
		t.Errorf("maxConnections = %d, want 5", s.maxConnections)
	}
}

func startServer(t *testing.T, s *Server) (string, <-chan error) {
	t.Helper()

	ln, err := s.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve(ln)
	}()
	return "http://" + ln.Addr().String(), errChan
}

func TestServer_Listen_BusyPort(t *testing.T) {
	first := New("127.0.0.1:0", okHandler())
	ln, err := first.Listen()
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	second := New(ln.Addr().String(), okHandler())
	if _, err := second.Listen(); err == nil {
		t.Error("Listen() on a busy port should fail")
	}
}

func TestServer_Shutdown(t *testing.T) {
	s := New("127.0.0.1:0", okHandler())
	url, errChan := startServer(t, s)

	resp, err := http.Get(url + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Serve returned unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for Serve to return")
	}
}

func TestServer_ShutdownEndsStreams(t *testing.T) {
	env := newRouterEnv(t, &RouterConfig{})
	s := New("127.0.0.1:0", env.router)
	url, errChan := startServer(t, s)

	resp, err := http.Get(url + "/sse-counter")
	if err != nil {
		t.Fatalf("GET /sse-counter: %v", err)
	}
	defer resp.Body.Close()

	// Wait for the first event so the stream is surely running.
	sc := bufio.NewScanner(resp.Body)
	if !sc.Scan() {
		t.Fatal("no event before shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}
	if d := time.Since(start); d > time.Second {
		t.Errorf("Shutdown took %v with an open stream", d)
	}

	<-errChan
	deadline := time.Now().Add(time.Second)
	for env.streams.Active() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := env.streams.Active(); got != 0 {
		t.Errorf("active streams after shutdown = %d, want 0", got)
	}
}

func TestServer_MaxConnections(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /block", func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
	})
	mux.Handle("GET /ok", okHandler())

	s := New("127.0.0.1:0", mux, WithMaxConnections(1))
	url, _ := startServer(t, s)
	defer s.Shutdown(context.Background())

	blocking := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if resp, err := blocking.Get(url + "/block"); err == nil {
			resp.Body.Close()
		}
	}()
	<-entered

	impatient := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   200 * time.Millisecond,
	}
	if resp, err := impatient.Get(url + "/ok"); err == nil {
		resp.Body.Close()
		t.Fatal("second connection should wait while the limit is reached")
	}

	close(release)
	<-done

	patient := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
		Timeout:   2 * time.Second,
	}
	resp, err := patient.Get(url + "/ok")
	if err != nil {
		t.Fatalf("GET /ok after release: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
