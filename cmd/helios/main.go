package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/helios-agent/helios/config"
	"github.com/helios-agent/helios/internal/chat"
	"github.com/helios-agent/helios/internal/llm"
	"github.com/helios-agent/helios/internal/tool"
)

const defaultSystemPrompt = "You are Helios, a helpful AI assistant with access to tools. " +
	"You are knowledgeable, concise, and friendly. " +
	"When you need to perform calculations, get the current time, or search for information, " +
	"use the available tools."

const helpText = `Commands:
  /exit, /quit   Exit the chat
  /clear         Clear conversation history (keeps the system prompt)
  /history       Show the conversation so far
  /help          Show this help message

Available tools: calculator, datetime, web_search`

func main() {
	model := flag.String("model", "", "model to use (overrides LLM_MODEL)")
	system := flag.String("system", "", "system prompt (overrides the default)")
	stream := flag.Bool("stream", false, "stream responses as they arrive (disables tools)")
	flag.Parse()

	cfg := config.Load()
	if *model != "" {
		cfg.LLMModel = *model
	}

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.APIKey(),
		AuthToken:   cfg.AnthropicToken,
		Model:       cfg.LLMModel,
		BaseURL:     cfg.OllamaBaseURL,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		AppName:     cfg.AppName,
		SiteURL:     cfg.SiteURL,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	systemPrompt := defaultSystemPrompt
	if *system != "" {
		systemPrompt = *system
	}

	// The streaming path does not support tool calls, so a streaming
	// session gets no registry.
	var registry *tool.Registry
	if !*stream {
		registry = tool.DefaultRegistry()
	}

	session := chat.NewSession(client, chat.SessionConfig{
		SystemPrompt:      systemPrompt,
		Tools:             registry,
		MaxToolIterations: cfg.MaxToolIterations,
		MaxContextTokens:  cfg.MaxContextTokens,
	})
	log.Printf("conversation %s started (provider=%s)", session.ConversationID(), cfg.LLMProvider)

	repl(session, *stream)
}

func repl(session *chat.Session, stream bool) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if interactive {
		fmt.Println("Helios ready. Type /help for commands.")
		fmt.Print("you> ")
	}

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			prompt(interactive)
			continue
		}

		switch strings.ToLower(input) {
		case "/exit", "/quit":
			return
		case "/clear":
			session.ClearHistory(true)
			fmt.Println("history cleared")
			prompt(interactive)
			continue
		case "/history":
			for _, turn := range session.History() {
				fmt.Printf("[%s] %s\n", turn.Role, turn.Content)
			}
			prompt(interactive)
			continue
		case "/help":
			fmt.Println(helpText)
			prompt(interactive)
			continue
		}

		if err := exchange(ctx, session, input, stream); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		if !interactive {
			return // single exchange in pipe mode
		}
		fmt.Print("you> ")
	}
}

func exchange(ctx context.Context, session *chat.Session, input string, stream bool) error {
	if stream {
		_, err := session.SendMessageStreaming(ctx, input, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Println()
		return err
	}

	reply, err := session.SendMessage(ctx, input)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func prompt(interactive bool) {
	if interactive {
		fmt.Print("you> ")
	}
}
