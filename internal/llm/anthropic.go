package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const anthropicAPI = "https://api.anthropic.com/v1/messages"

const defaultAnthropicMaxTokens = 4096

// AnthropicClient is a raw net/http client for the Anthropic Messages API.
type AnthropicClient struct {
	apiKey    string
	authToken string
	model     string
	maxTokens int
	http      *http.Client
}

func NewAnthropicClient(apiKey, authToken, model string, maxTokens int) *AnthropicClient {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicClient{
		apiKey:    apiKey,
		authToken: authToken,
		model:     model,
		maxTokens: maxTokens,
		http:      &http.Client{},
	}
}

// Raw API request/response types

type anthRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    []anthText    `json:"system,omitempty"`
	Messages  []anthMessage `json:"messages"`
	Tools     []anthTool    `json:"tools,omitempty"`
	Stream    bool          `json:"stream,omitempty"`
}

type anthText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []anthBlock
}

type anthBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

type anthTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

type anthResponse struct {
	Content []anthBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// anthStreamEvent is the subset of SSE event payloads we care about.
type anthStreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AnthropicClient) Generate(ctx context.Context, messages []Message, tools []Tool) (*Response, error) {
	reqBody := c.buildRequest(messages, tools, false)

	respBody, err := c.post(ctx, reqBody, nil)
	if err != nil {
		return nil, err
	}

	var anthResp anthResponse
	if err := json.Unmarshal(respBody, &anthResp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	result := &Response{}
	for _, block := range anthResp.Content {
		switch block.Type {
		case "text":
			result.Content += block.Text
		case "tool_use":
			result.ToolCalls = append(result.ToolCalls, ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
			})
		}
	}

	return result, nil
}

func (c *AnthropicClient) GenerateStream(ctx context.Context, messages []Message, onChunk func(string)) error {
	reqBody := c.buildRequest(messages, nil, true)
	_, err := c.post(ctx, reqBody, onChunk)
	return err
}

// post sends the request. With onChunk nil it reads and returns the whole
// body; otherwise it consumes the SSE stream, calling onChunk per text delta.
func (c *AnthropicClient) post(ctx context.Context, reqBody anthRequest, onChunk func(string)) ([]byte, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", anthropicAPI, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("User-Agent", "helios/1.0")

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
		req.Header.Set("anthropic-beta", "oauth-2025-04-20")
	} else if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("anthropic chat: %s %s", resp.Status, string(respBody))
	}

	if onChunk == nil {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
		return respBody, nil
	}

	return nil, c.readStream(resp.Body, onChunk)
}

func (c *AnthropicClient) readStream(r io.Reader, onChunk func(string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}

		var ev anthStreamEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			continue // keep-alives and unknown events
		}

		switch ev.Type {
		case "content_block_delta":
			if ev.Delta.Type == "text_delta" && ev.Delta.Text != "" {
				onChunk(ev.Delta.Text)
			}
		case "error":
			if ev.Error != nil {
				return fmt.Errorf("anthropic stream: %s: %s", ev.Error.Type, ev.Error.Message)
			}
		case "message_stop":
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}
	return nil
}

func (c *AnthropicClient) buildRequest(messages []Message, tools []Tool, stream bool) anthRequest {
	anthTools := make([]anthTool, len(tools))
	for i, t := range tools {
		schema := map[string]any{"type": "object"}
		if props, ok := t.Parameters["properties"]; ok {
			schema["properties"] = props
		}
		if req, ok := t.Parameters["required"]; ok {
			schema["required"] = req
		}
		anthTools[i] = anthTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		}
	}

	// Anthropic takes system text as a top-level field, not a message.
	var system []anthText
	var anthMsgs []anthMessage
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, anthText{Type: "text", Text: m.Content})
		case "user":
			anthMsgs = append(anthMsgs, anthMessage{Role: "user", Content: m.Content})
		case "tool":
			anthMsgs = append(anthMsgs, anthMessage{
				Role: "user",
				Content: []anthBlock{{
					Type:      "tool_result",
					ToolUseID: m.ToolCallID,
					Content:   m.Content,
				}},
			})
		case "assistant":
			if len(m.ToolCalls) > 0 {
				var blocks []anthBlock
				if m.Content != "" {
					blocks = append(blocks, anthBlock{Type: "text", Text: m.Content})
				}
				for _, tc := range m.ToolCalls {
					input := json.RawMessage(tc.Arguments)
					if !json.Valid(input) {
						input, _ = json.Marshal(tc.Arguments)
					}
					blocks = append(blocks, anthBlock{
						Type:  "tool_use",
						ID:    tc.ID,
						Name:  tc.Name,
						Input: input,
					})
				}
				anthMsgs = append(anthMsgs, anthMessage{Role: "assistant", Content: blocks})
			} else {
				anthMsgs = append(anthMsgs, anthMessage{Role: "assistant", Content: m.Content})
			}
		}
	}

	return anthRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  anthMsgs,
		Tools:     anthTools,
		Stream:    stream,
	}
}
