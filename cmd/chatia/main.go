// Package main is a terminal harness for the chat session client.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Crimsonfv/ChatIA-Frond/internal/auth"
	"github.com/Crimsonfv/ChatIA-Frond/internal/config"
	"github.com/Crimsonfv/ChatIA-Frond/internal/filter"
	"github.com/Crimsonfv/ChatIA-Frond/internal/gateway"
	"github.com/Crimsonfv/ChatIA-Frond/internal/session"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/logger"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "chatia-client", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing")
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Credential store; the token normally comes from the login flow, the
	// harness takes it from the environment.
	creds := auth.NewCredentialStore()
	if token := os.Getenv("CHAT_API_TOKEN"); token != "" {
		creds.SetToken(token)
	}

	gw := gateway.New(cfg, creds, log)
	ctrl := session.New(gw, filter.New(), creds, log)

	if err := ctrl.LoadConversations(ctx); err != nil {
		log.Warn("could not load conversations; starting empty")
	}
	if err := ctrl.LoadExcludedTerms(ctx); err != nil {
		log.Warn("could not load excluded terms; masking disabled")
	}

	fmt.Println("chatia — type a question, /help for commands, /quit to exit")
	repl(ctx, ctrl)
}

func repl(ctx context.Context, ctrl *session.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := command(ctx, ctrl, line); quit {
				return
			}
			continue
		}
		send(ctx, ctrl, line)
	}
}

func send(ctx context.Context, ctrl *session.Controller, question string) {
	done := make(chan error, 1)
	go func() { done <- ctrl.Send(ctx, question) }()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			fmt.Println()
			if err != nil {
				printSendError(err)
				return
			}
			snap := ctrl.Snapshot()
			if len(snap.Transcript) > 0 {
				last := snap.Transcript[len(snap.Transcript)-1]
				fmt.Println(last.Content)
			}
			return
		case <-ticker.C:
			status := ctrl.Status()
			if status.StillWorking {
				fmt.Printf("\rstill working on it (%ds)...", status.ElapsedSeconds)
			} else if status.IsTyping {
				fmt.Printf("\rwaiting (%ds)...", status.ElapsedSeconds)
			}
		}
	}
}

func printSendError(err error) {
	var validation *session.ValidationError
	if errors.As(err, &validation) {
		for _, issue := range validation.Issues {
			fmt.Println("invalid message:", issue.Message)
		}
		return
	}
	var failed *session.SendFailedError
	if errors.As(err, &failed) {
		if gateway.IsKind(err, gateway.KindTimeout) {
			fmt.Println("the backend is taking too long; your question was kept, try again")
		} else {
			fmt.Println("send failed:", failed.Err)
		}
		return
	}
	fmt.Println("error:", err)
}

func command(ctx context.Context, ctrl *session.Controller, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Println("/new [title], /list, /select <id>, /delete <id>, /rename <id> <title>, /terms, /exclude <term>, /quit")
	case "/new":
		title := strings.TrimSpace(strings.TrimPrefix(line, "/new"))
		if _, err := ctrl.CreateConversation(ctx, title); err != nil {
			fmt.Println("error:", err)
		}
	case "/list":
		snap := ctrl.Snapshot()
		for _, conv := range snap.Conversations {
			marker := " "
			if snap.Active != nil && snap.Active.ID == conv.ID {
				marker = "*"
			}
			fmt.Printf("%s %d  %s  (%s)\n", marker, conv.ID, conv.Title,
				session.FormatRelativeTime(conv.LastActivityAt, time.Now()))
		}
	case "/select":
		if id, ok := parseID(fields); ok {
			if err := ctrl.SelectConversation(ctx, id); err != nil {
				fmt.Println("error:", err)
			} else {
				for _, msg := range ctrl.Snapshot().Transcript {
					fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
				}
			}
		}
	case "/delete":
		if id, ok := parseID(fields); ok {
			if err := ctrl.DeleteConversation(ctx, id); err != nil {
				fmt.Println("error:", err)
			}
		}
	case "/rename":
		if id, ok := parseID(fields); ok && len(fields) > 2 {
			if err := ctrl.RenameConversation(ctx, id, strings.Join(fields[2:], " ")); err != nil {
				fmt.Println("error:", err)
			}
		}
	case "/terms":
		for _, t := range ctrl.ExcludedTerms() {
			state := "off"
			if t.Active {
				state = "on"
			}
			fmt.Printf("%d  %s  [%s]\n", t.ID, t.Term, state)
		}
	case "/exclude":
		if len(fields) > 1 {
			if _, err := ctrl.AddExcludedTerm(ctx, strings.Join(fields[1:], " ")); err != nil {
				fmt.Println("error:", err)
			}
		}
	default:
		fmt.Println("unknown command; /help")
	}
	return false
}

func parseID(fields []string) (int64, bool) {
	if len(fields) < 2 {
		fmt.Println("missing id")
		return 0, false
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		fmt.Println("invalid id:", fields[1])
		return 0, false
	}
	return id, true
}
