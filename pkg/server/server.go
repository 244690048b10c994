package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordrank/pkg/config"
	"github.com/bastiangx/wordrank/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word suggestions
type Server struct {
	completer  suggest.ICompleter
	config     *config.Config
	configPath string
	decoder    *msgpack.Decoder
	encoder    *msgpack.Encoder
}

// NewServer creates a suggestion server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(completer, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams, mainly for tests
func NewServerWithIO(completer suggest.ICompleter, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		completer:  completer,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(r),
		encoder:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. Returns nil once the input
// stream closes.
func (s *Server) Start() error {
	log.Debug("Starting server.")

	for {
		var request Request
		// No framing between messages, so a decode error means the stream
		// is unrecoverable; report it and stop.
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches a single decoded request
func (s *Server) handleRequest(request Request) {
	if request.Prefix != "" {
		s.handleComplete(request)
		return
	}

	switch request.Action {
	case "add_word":
		s.handleAddWord(request)
	case "stats":
		s.send(StatusResponse{ID: request.ID, Status: "ok", Stats: s.completer.Stats()})
	case "set_limits":
		s.handleSetLimits(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	case "":
		s.sendError(request.ID, "Missing 'p' parameter", 400)
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

// handleComplete validates the prefix against the configured bounds, asks
// the completer for ranked suggestions and sends them with 1-based ranks.
func (s *Server) handleComplete(request Request) {
	prefix := request.Prefix

	if len(prefix) < s.config.Server.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", s.config.Server.MinPrefix), 400)
		log.Debug("Prefix too short in request")
		return
	}
	if len(prefix) > s.config.Server.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", s.config.Server.MaxPrefix), 400)
		log.Debug("Prefix too long in request")
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.completer.Complete(prefix, limit)
	elapsed := time.Since(start)

	ranked := make([]ResponseSuggestion, len(suggestions))
	for i, sg := range suggestions {
		ranked[i] = ResponseSuggestion{
			Word:   sg.Word,
			Rank:   uint16(i + 1),
			Weight: sg.Weight,
		}
	}

	s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: ranked,
		Count:       len(ranked),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

// handleAddWord feeds a word into the live index. A missing weight counts
// as 1, matching the insert default.
func (s *Server) handleAddWord(request Request) {
	if request.Word == "" {
		s.sendError(request.ID, "Missing 'word' parameter", 400)
		return
	}
	weight := request.Weight
	if weight == 0 {
		weight = 1
	}
	s.completer.AddWord(request.Word, weight)
	log.Debugf("Added word '%s' with weight %d", request.Word, weight)
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// handleSetLimits updates server bounds and persists them
func (s *Server) handleSetLimits(request Request) {
	if err := s.config.Update(s.configPath, request.MaxLimit, request.MinPrefix, request.MaxPrefix); err != nil {
		log.Errorf("Saving config: %v", err)
		s.sendError(request.ID, "Failed to save config", 500)
		return
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
