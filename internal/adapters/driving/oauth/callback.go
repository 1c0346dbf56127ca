// Package oauth runs the loopback redirect server used by the installed-app
// OAuth flow behind "screener google login".
package oauth

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>Screener</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 20vh">
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>`))

// outcome is what the first redirect produced.
type outcome struct {
	code string
	err  error
}

// CallbackServer receives the OAuth redirect on 127.0.0.1. Only the first
// redirect counts; later ones are answered but dropped.
type CallbackServer struct {
	state string
	done  chan outcome

	mu     sync.Mutex
	port   int
	server *http.Server
}

// NewCallbackServer prepares a server for port. Port 0 picks a free port
// when Start runs.
func NewCallbackServer(port int, state string) *CallbackServer {
	return &CallbackServer{
		state: state,
		port:  port,
		done:  make(chan outcome, 1),
	}
}

func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = ln.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("GET /callback", s.handle)
	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	srv := s.server
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.deliver(outcome{err: err})
		}
	}()
	return nil
}

func (s *CallbackServer) handle(w http.ResponseWriter, r *http.Request) {
	o := s.parse(r)
	s.deliver(o)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Title, Message string }{
		"Screener is connected to Google",
		"You can close this window and return to the terminal.",
	}
	if o.err != nil {
		data.Title, data.Message = "Authorisation failed", o.err.Error()
	}
	_ = page.Execute(w, data)
}

func (s *CallbackServer) parse(r *http.Request) outcome {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		return outcome{err: fmt.Errorf("oauth error: %s - %s", e, q.Get("error_description"))}
	}
	if got := q.Get("state"); got != s.state {
		return outcome{err: fmt.Errorf("state mismatch: got %q", got)}
	}
	code := q.Get("code")
	if code == "" {
		return outcome{err: errors.New("no authorization code received")}
	}
	return outcome{code: code}
}

func (s *CallbackServer) deliver(o outcome) {
	select {
	case s.done <- o:
	default:
	}
}

// WaitForCode blocks until the redirect arrives or ctx ends.
func (s *CallbackServer) WaitForCode(ctx context.Context) (string, error) {
	select {
	case o := <-s.done:
		return o.code, o.err
	case <-ctx.Done():
		return "", fmt.Errorf("timeout waiting for authorization callback: %w", ctx.Err())
	}
}

// Stop shuts the server down. It is safe to call more than once or before
// Start.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI is registered with the consent request. Google accepts any
// port on localhost for desktop clients.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://localhost:%d/callback", s.Port())
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{url}
	case "linux":
		name, args = "xdg-open", []string{url}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}
