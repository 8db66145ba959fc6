package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/helios-agent/helios/internal/llm"
	"github.com/helios-agent/helios/internal/tool"
)

// defaultMaxToolIterations bounds the tool-calling loop. It is a circuit
// breaker against models that keep requesting tools and never answer.
const defaultMaxToolIterations = 5

// limitMessage is the terminal reply when the tool loop exhausts its
// iteration budget. It is appended to history like any normal turn.
const limitMessage = "I'm sorry, but I reached the maximum number of tool calls " +
	"before arriving at a final answer. Please try rephrasing or simplifying your request."

// SessionConfig configures a Session. The zero value is usable: no system
// prompt, no tools, default iteration bound, no context trimming.
type SessionConfig struct {
	// SystemPrompt seeds the conversation with one system message.
	SystemPrompt string

	// Tools, when non-nil, is offered to the model on every completion
	// request and used to dispatch its tool calls.
	Tools *tool.Registry

	// MaxToolIterations bounds the tool-calling loop per SendMessage
	// call. Zero means the default of 5.
	MaxToolIterations int

	// MaxContextTokens, when positive, trims the wire projection of the
	// conversation to an estimated token budget before each request.
	// The stored conversation is never trimmed.
	MaxContextTokens int
}

// Session owns one conversation and drives the send-message protocol
// against an LLM client, including the bounded tool-calling loop.
//
// A session handles one call at a time: a mutex queues concurrent
// SendMessage / SendMessageStreaming calls rather than interleaving their
// appends.
type Session struct {
	mu                sync.Mutex
	client            llm.Client
	tools             *tool.Registry
	conv              *Conversation
	maxToolIterations int
	maxContextTokens  int
}

func NewSession(client llm.Client, cfg SessionConfig) *Session {
	maxIter := cfg.MaxToolIterations
	if maxIter <= 0 {
		maxIter = defaultMaxToolIterations
	}

	conv := NewConversation()
	conv.Metadata["conversation_id"] = uuid.NewString()
	if cfg.SystemPrompt != "" {
		conv.AddSystemMessage(cfg.SystemPrompt)
	}

	return &Session{
		client:            client,
		tools:             cfg.Tools,
		conv:              conv,
		maxToolIterations: maxIter,
		maxContextTokens:  cfg.MaxContextTokens,
	}
}

// ConversationID returns the session's correlation id.
func (s *Session) ConversationID() string {
	id, _ := s.conv.Metadata["conversation_id"].(string)
	return id
}

// SendMessage appends the user's text and runs completions until the model
// produces a final answer, executing any tool calls it requests along the
// way. Tool failures are folded into the conversation as tool-result text;
// only an LLM client error aborts the turn, and the conversation up to
// that point remains valid.
func (s *Session) SendMessage(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conv.AddUserMessage(text)

	var schemas []llm.Tool
	if s.tools != nil {
		schemas = s.tools.Schemas()
	}

	for i := 0; i < s.maxToolIterations; i++ {
		resp, err := s.client.Generate(ctx, s.wireMessages(schemas), schemas)
		if err != nil {
			return "", fmt.Errorf("llm generate: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			s.conv.AddAssistantMessage(resp.Content)
			return resp.Content, nil
		}

		s.conv.Append(NewToolRequestMessage(resp.Content, resp.ToolCalls))

		// Results are appended in request order, matching each call's id.
		for _, tc := range resp.ToolCalls {
			s.conv.Append(NewToolResultMessage(tc.ID, s.runToolCall(ctx, tc)))
		}
	}

	s.conv.AddAssistantMessage(limitMessage)
	return limitMessage, nil
}

// runToolCall parses one call's raw arguments and dispatches it. Every
// failure mode comes back as text for the model to read; nothing here can
// abort the turn.
func (s *Session) runToolCall(ctx context.Context, tc llm.ToolCall) string {
	args := map[string]any{}
	if strings.TrimSpace(tc.Arguments) != "" {
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return "error parsing tool arguments: " + err.Error()
		}
	}

	if s.tools == nil {
		return fmt.Sprintf("Error: tool %q not found", tc.Name)
	}

	res := s.tools.Execute(ctx, tc.Name, args)
	log.Printf("tool %s → ok=%v", tc.Name, res.Success)
	if !res.Success {
		return "Error: " + res.Error
	}
	return res.Output
}

// SendMessageStreaming appends the user's text, streams a single
// completion, and hands each chunk to onChunk as it arrives. The
// concatenated text is committed as one assistant message only after the
// stream ends cleanly; on any error, including cancellation by an
// abandoning caller, nothing is committed. Tool calling is deliberately
// unsupported on this path.
func (s *Session) SendMessageStreaming(ctx context.Context, text string, onChunk func(string)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conv.AddUserMessage(text)

	var b strings.Builder
	err := s.client.GenerateStream(ctx, s.wireMessages(nil), func(chunk string) {
		b.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	})
	if err != nil {
		return "", fmt.Errorf("llm stream: %w", err)
	}

	full := b.String()
	s.conv.AddAssistantMessage(full)
	return full, nil
}

// wireMessages projects the conversation for transport, applying the
// optional context budget to the projection only.
func (s *Session) wireMessages(schemas []llm.Tool) []llm.Message {
	wire := s.conv.ToWire()
	if s.maxContextTokens <= 0 {
		return wire
	}

	budget := s.maxContextTokens - llm.EstimateToolsTokens(schemas)
	if budget < 1000 {
		budget = 1000 // floor so the current turn always fits
	}
	trimmed := llm.TrimMessages(wire, budget)
	if len(trimmed) < len(wire) {
		log.Printf("context trimmed: %d → %d messages", len(wire), len(trimmed))
	}
	return trimmed
}

// ClearHistory drops the conversation, optionally retaining system
// messages.
func (s *Session) ClearHistory(keepSystem bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Clear(keepSystem)
}

// MessageCount returns the number of entries in the conversation.
func (s *Session) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Len()
}

// History returns (role, content) pairs for the whole conversation.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.History()
}
