package jsonrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Server serves the JSON-RPC API over HTTP, with the websocket stream
// endpoint mounted at /ws.
type Server struct {
	handler    *Handler
	ws         *WebSocketServer
	httpServer *http.Server
}

// NewServer creates the HTTP server. The websocket server may be nil to
// disable streaming.
func NewServer(addr string, handler *Handler, ws *WebSocketServer) *Server {
	s := &Server{handler: handler, ws: ws}

	mux := http.NewServeMux()
	mux.Handle("/", s)
	if ws != nil {
		mux.Handle("/ws", ws)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ListenAndServe runs the server until Shutdown. It returns
// http.ErrServerClosed after a clean shutdown.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.ws != nil {
		s.ws.CloseAll()
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, Response{JSONRPC: "2.0", Error: errParse(err)})
		return
	}

	result, rpcErr := s.handler.Handle(r.Context(), req.Method, req.Params)
	if rpcErr != nil {
		writeResponse(w, Response{JSONRPC: "2.0", Error: rpcErr, ID: req.ID})
		return
	}
	writeResponse(w, Response{JSONRPC: "2.0", Result: result, ID: req.ID})
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
