package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"coursechat/internal/provider"
	"coursechat/internal/rag"
	"coursechat/internal/vectorstore"
)

const stateDir = ".coursechat"

func main() {
	coursesPath := flag.String("courses", "courses.json", "path to the course corpus JSON file")
	flag.Parse()

	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	store := vectorstore.NewMemStore()
	docs, err := vectorstore.LoadCourses(*coursesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load courses from %s: %v\n", *coursesPath, err)
		os.Exit(1)
	}
	for _, d := range docs {
		store.AddCourse(d.Course, d.Chunks)
	}

	maxRounds := provider.DefaultMaxRounds
	if v := os.Getenv("CCHAT_MAX_ROUNDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "invalid CCHAT_MAX_ROUNDS %q: want a positive integer\n", v)
			os.Exit(1)
		}
		maxRounds = n
	}

	client := provider.NewAnthropicClient()
	pipeline := rag.New(client, store, rag.Options{MaxRounds: maxRounds})

	// Reload persisted sessions so follow-up context survives restarts.
	sessionsPath := filepath.Join(stateDir, "sessions.json")
	if err := pipeline.Sessions().Load(sessionsPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load persisted sessions: %v\n", err)
	}

	stats := pipeline.Analytics()
	fmt.Printf("Loaded %d course(s)", stats.TotalCourses)
	if stats.TotalCourses > 0 {
		fmt.Printf(": %s", strings.Join(stats.CourseTitles, ", "))
	}
	fmt.Println()

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Ask about the course materials (Ctrl-C to quit)")

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	sessionID := pipeline.NewSession()

outer:
	for {
		fmt.Print("[94mYou[0m: ")
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case line, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		answer, citations, err := pipeline.Query(ctx, line, sessionID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Printf("[93mAssistant[0m: %s\n", answer)
		if len(citations) > 0 {
			fmt.Println("Sources:")
			for _, c := range citations {
				if c.URL != "" {
					fmt.Printf("  - %s (%s)\n", c.Text, c.URL)
				} else {
					fmt.Printf("  - %s\n", c.Text)
				}
			}
		}

		if err := os.MkdirAll(stateDir, 0o755); err == nil {
			if err := pipeline.Sessions().Save(sessionsPath); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to save sessions: %v\n", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
}
