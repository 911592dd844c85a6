package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server
	mux *http.ServeMux
}

// newMockServer creates a new mock server.
func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{mux: http.NewServeMux()}
	m.Server = httptest.NewServer(m.mux)
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for a ServeMux pattern.
func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.mux.HandleFunc(pattern, handler)
}

// jsonResponse writes data wrapped in the server's success envelope.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    "OK",
		"message": "Success",
		"data":    data,
	})
}

// errorResponse writes an error envelope.
func errorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// runApp runs the CLI against server and returns what it printed.
func runApp(t *testing.T, server *mockServer, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out

	full := []string{"checkgrid-cli", "--server", server.URL}
	full = append(full, args...)
	err := app.Run(full)
	return out.String(), err
}
