package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint:
// OpenAI itself, OpenRouter, or a local Ollama server.
type OpenAIClient struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

type OpenAIOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	AppName     string // X-Title header, OpenRouter attribution
	SiteURL     string // HTTP-Referer header, OpenRouter attribution
}

func NewOpenAIClient(o OpenAIOptions) *OpenAIClient {
	var opts []option.RequestOption
	if o.APIKey != "" {
		opts = append(opts, option.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(o.BaseURL))
	}
	if o.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", o.SiteURL))
	}
	if o.AppName != "" {
		opts = append(opts, option.WithHeader("X-Title", o.AppName))
	}
	model := o.Model
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		maxTokens:   o.MaxTokens,
		temperature: o.Temperature,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, tools []Tool) (*Response, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.buildParams(messages, tools))
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}

	if len(resp.Choices) == 0 {
		return &Response{}, nil
	}

	choice := resp.Choices[0]
	result := &Response{Content: choice.Message.Content}

	for _, tc := range choice.Message.ToolCalls {
		ftc := tc.AsFunction()
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:        ftc.ID,
			Name:      ftc.Function.Name,
			Arguments: ftc.Function.Arguments,
		})
	}

	return result, nil
}

func (c *OpenAIClient) GenerateStream(ctx context.Context, messages []Message, onChunk func(string)) error {
	params := c.buildParams(messages, nil)
	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if delta := chunk.Choices[0].Delta.Content; delta != "" {
			onChunk(delta)
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai stream: %w", err)
	}
	return nil
}

func (c *OpenAIClient) buildParams(messages []Message, tools []Tool) openai.ChatCompletionNewParams {
	// Some OpenAI-compatible backends reject an empty tools array, so the
	// field is only set when there is something to offer.
	var oaiTools []openai.ChatCompletionToolUnionParam
	for _, t := range tools {
		oaiTools = append(oaiTools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters:  openai.FunctionParameters(t.Parameters),
		}))
	}

	var oaiMsgs []openai.ChatCompletionMessageParamUnion
	for _, m := range messages {
		switch m.Role {
		case "system":
			oaiMsgs = append(oaiMsgs, openai.SystemMessage(m.Content))
		case "user":
			oaiMsgs = append(oaiMsgs, openai.UserMessage(m.Content))
		case "tool":
			oaiMsgs = append(oaiMsgs, openai.ToolMessage(m.Content, m.ToolCallID))
		case "assistant":
			if len(m.ToolCalls) > 0 {
				toolCalls := make([]openai.ChatCompletionMessageToolCallUnionParam, len(m.ToolCalls))
				for j, tc := range m.ToolCalls {
					toolCalls[j] = openai.ChatCompletionMessageToolCallUnionParam{
						OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
							ID: tc.ID,
							Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
								Name:      tc.Name,
								Arguments: tc.Arguments,
							},
						},
					}
				}
				oaiMsgs = append(oaiMsgs, openai.ChatCompletionMessageParamUnion{
					OfAssistant: &openai.ChatCompletionAssistantMessageParam{
						Content: openai.ChatCompletionAssistantMessageParamContentUnion{
							OfString: param.NewOpt(m.Content),
						},
						ToolCalls: toolCalls,
					},
				})
			} else {
				oaiMsgs = append(oaiMsgs, openai.AssistantMessage(m.Content))
			}
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: oaiMsgs,
		Tools:    oaiTools,
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.maxTokens))
	}
	if c.temperature > 0 {
		params.Temperature = openai.Float(c.temperature)
	}
	return params
}
