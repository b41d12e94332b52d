package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bfchat"
	"github.com/fwojciec/bfchat/chat"
	"github.com/fwojciec/bfchat/crawl"
	"github.com/fwojciec/bfchat/gemini"
	"github.com/fwojciec/bfchat/goquery"
	bfhttp "github.com/fwojciec/bfchat/http"
	"github.com/fwojciec/bfchat/rod"
	bfslog "github.com/fwojciec/bfchat/slog"
	"github.com/fwojciec/bfchat/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		msg := err.Error()
		if bfchat.ErrorCode(err) != bfchat.EINTERNAL {
			msg = bfchat.ErrorMessage(err)
		}
		fmt.Fprintln(os.Stderr, msg)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded from the environment by Run when nil.
	Config *Config

	// SQLite database holding chat transcripts.
	DB *sqlite.DB

	// Overrides for end-to-end testing. Built from Config when nil.
	Fetcher   bfchat.Fetcher
	Responder bfchat.Responder
	Tokens    bfchat.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if m.Config == nil {
		cfg, err := LoadConfig(".env")
		if err != nil {
			return err
		}
		m.Config = cfg
	}
	cfg := m.Config

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bfchat"),
		kong.Description("Breastfeeding questions answered from La Leche League France."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"seed_url":  cfg.SeedURL,
			"max_pages": strconv.Itoa(cfg.MaxPages),
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bfchat --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	cfg.SeedURL = cli.Seed

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch cmd {
	case "ask", "chat":
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, "Hint: set GEMINI_API_KEY in the environment or in a .env file")
			return err
		}
	case "crawl":
		if err := cfg.ValidateCrawl(); err != nil {
			return err
		}
	}

	if cli.needsCrawl(cmd) {
		fetcher, err := m.fetcher(cli.Render, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		pages := crawl.NewPageFetcher(
			bfslog.NewLoggingFetcher(fetcher, deps.Logger),
			goquery.NewExtractor(),
			crawl.NewCache(cfg.CacheSize),
		)
		deps.Builder = &crawl.Builder{
			Pages:    bfslog.NewLoggingPageFetcher(pages, deps.Logger),
			Logger:   deps.Logger,
			Progress: progressPrinter(stderr),
		}
	}

	if cmd == "crawl" {
		deps.Tokens = m.tokenCounter(deps.Logger)
	}

	if cmd == "ask" || cmd == "chat" {
		responder, err := m.responder(ctx, stderr)
		if err != nil {
			return err
		}

		m.DB = sqlite.NewDB(cfg.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BFCHAT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
		}
		defer m.Close()

		deps.Conversation = chat.NewConversation(
			sqlite.NewSessionService(m.DB),
			bfslog.NewLoggingResponder(responder, deps.Logger),
			deps.Logger,
		)
	}

	return kongCtx.Run(deps)
}

func (m *Main) fetcher(render bool, stderr io.Writer) (bfchat.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(m.Config.FetchTimeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	opts := []bfhttp.Option{bfhttp.WithTimeout(m.Config.FetchTimeout)}
	if m.Config.UserAgent != "" {
		opts = append(opts, bfhttp.WithUserAgent(m.Config.UserAgent))
	}
	return bfhttp.NewFetcher(opts...), nil
}

func (m *Main) responder(ctx context.Context, stderr io.Writer) (bfchat.Responder, error) {
	if m.Responder != nil {
		return m.Responder, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  m.Config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, bfchat.Errorf(bfchat.ECONFIG, "failed to connect to Gemini API: %v", err)
	}
	return gemini.NewResponder(client, m.Config.Model, m.Config.SeedURL), nil
}

// tokenCounter returns nil when the tokenizer cannot be loaded; token
// estimates are then left out of reports.
func (m *Main) tokenCounter(logger *slog.Logger) bfchat.TokenCounter {
	if m.Tokens != nil {
		return m.Tokens
	}
	tc, err := gemini.NewTokenCounter(m.Config.Model)
	if err != nil {
		logger.Warn("token counter unavailable", "model", m.Config.Model, "err", err)
		return nil
	}
	return tc
}
