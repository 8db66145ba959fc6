package chat

import "github.com/helios-agent/helios/internal/llm"

// Role identifies the sender of a conversation entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// RoleTool marks a tool-result entry. It is stored explicitly rather
	// than inferred from field presence, so a tool result can never be
	// mistaken for a system instruction.
	RoleTool Role = "tool"
)

// Message is one immutable entry in a conversation. Exactly one shape is
// valid per entry: a plain turn (neither optional field set), a tool
// request (ToolCalls set, assistant only), or a tool result (ToolCallID
// set, tool role only). The constructors below are the only intended way
// to build the latter two.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []llm.ToolCall
	ToolCallID string
}

// NewToolRequestMessage builds the assistant entry recording a batch of
// model-requested tool calls. Content carries whatever text accompanied
// the request and may be empty.
func NewToolRequestMessage(content string, calls []llm.ToolCall) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		ToolCalls: append([]llm.ToolCall(nil), calls...),
	}
}

// NewToolResultMessage builds the entry carrying one tool call's result,
// correlated to the request by the call id.
func NewToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

// Turn is a (role, content) view of one entry, used for history display.
type Turn struct {
	Role    string
	Content string
}

// Conversation is an ordered, append-only log of messages. Entries are
// never mutated or reordered after Append; the only removal operation is
// Clear. Metadata is a free-form map the conversation itself does not
// interpret.
type Conversation struct {
	messages []Message
	Metadata map[string]any
}

func NewConversation() *Conversation {
	return &Conversation{Metadata: make(map[string]any)}
}

func (c *Conversation) AddSystemMessage(content string) {
	c.messages = append(c.messages, Message{Role: RoleSystem, Content: content})
}

func (c *Conversation) AddUserMessage(content string) {
	c.messages = append(c.messages, Message{Role: RoleUser, Content: content})
}

func (c *Conversation) AddAssistantMessage(content string) {
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: content})
}

// Append adds one fully formed message, used for tool requests and results.
func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

// Len returns the total entry count, including system and tool entries.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the entries in conversational order.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// History returns (role, content) pairs for every entry in order.
func (c *Conversation) History() []Turn {
	turns := make([]Turn, len(c.messages))
	for i, m := range c.messages {
		turns[i] = Turn{Role: string(m.Role), Content: m.Content}
	}
	return turns
}

// Clear removes messages. With keepSystem it retains exactly the current
// system entries in their original relative order; otherwise everything
// goes. Metadata survives either way.
func (c *Conversation) Clear(keepSystem bool) {
	if !keepSystem {
		c.messages = nil
		return
	}
	var kept []Message
	for _, m := range c.messages {
		if m.Role == RoleSystem {
			kept = append(kept, m)
		}
	}
	c.messages = kept
}

// ToWire projects the conversation into the transport format. Roles map
// directly: tool-result entries go out with role "tool" and their
// tool_call_id, tool requests as "assistant" with tool_calls verbatim.
func (c *Conversation) ToWire() []llm.Message {
	wire := make([]llm.Message, len(c.messages))
	for i, m := range c.messages {
		wire[i] = llm.Message{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCalls:  m.ToolCalls,
			ToolCallID: m.ToolCallID,
		}
	}
	return wire
}
