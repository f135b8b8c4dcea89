package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/sanju-subash/Cloudnest-rag/config"
	"github.com/sanju-subash/Cloudnest-rag/dialogue"
	"github.com/sanju-subash/Cloudnest-rag/invoice"
	"github.com/sanju-subash/Cloudnest-rag/messages"
	"github.com/sanju-subash/Cloudnest-rag/session"
)

type Server struct {
	httpServer *http.Server
	upgrader   websocket.Upgrader
	engine     *dialogue.Engine
	store      *session.Store
	config     *config.Config
}

func New(cfg *config.Config, engine *dialogue.Engine, store *session.Store) *Server {
	s := &Server{
		engine: engine,
		store:  store,
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Check allowed origins
				origin := r.Header.Get("Origin")
				for _, allowed := range cfg.AllowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/ask", s.handleAsk)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/bill", s.handleBill)
	mux.HandleFunc("/bill/pdf", s.handleBillPDF)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/menu-images/", http.StripPrefix("/menu-images/",
		http.FileServer(http.Dir(cfg.MenuImagesDir))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withCORS(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// Start begins listening for connections
func (s *Server) Start() error {
	log.Printf("🚀 Restaurant assistant starting on port %d", s.config.Port)
	log.Printf("📡 Chat endpoints: http://localhost:%d/ask, ws://localhost:%d/ws", s.config.Port, s.config.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("🛑 Shutting down server...")
	s.store.Shutdown()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range s.config.AllowedOrigins {
			if allowed == "*" || allowed == origin {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(s.config.IndexFile); err == nil {
		http.ServeFile(w, r, s.config.IndexFile)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "index.html not found in project root."})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "POST required"})
		return
	}

	var req messages.AskRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Question == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "question must not be empty"})
		return
	}
	req.Normalize()

	resp := s.engine.Ask(r.Context(), req.Question, req.SessionID)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, s.store.Count())
}

func (s *Server) handleBill(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = messages.DefaultSessionID
	}

	bill, found := s.store.LatestBill(sessionID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No generated bill found for this session."})
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleBillPDF(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = messages.DefaultSessionID
	}

	bill, found := s.store.LatestBill(sessionID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No generated bill found for this session."})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bill.BillID+".pdf"))
	if err := invoice.Render(w, bill, s.config.Invoice); err != nil {
		log.Printf("❌ Invoice render failed for %s: %v", bill.BillID, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
