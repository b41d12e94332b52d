package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/bfchat"
	"github.com/fwojciec/bfchat/chat"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	Config       *Config
	Builder      bfchat.CorpusBuilder
	Conversation *chat.Conversation
	Tokens       bfchat.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug details to stderr"`
	Seed    string `default:"${seed_url}" help:"Site the answers are grounded on"`
	Render  bool   `help:"Render pages with headless Chrome when crawling"`

	Ask   AskCmd   `cmd:"" help:"Ask one question and print the answer"`
	Chat  ChatCmd  `cmd:"" help:"Start an interactive chat session"`
	Crawl CrawlCmd `cmd:"" help:"Crawl the seed site and report the corpus"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about breastfeeding"`
	Crawl    bool   `help:"Crawl the seed site and send its text as context"`
	MaxPages int    `short:"n" default:"${max_pages}" help:"Maximum pages to crawl"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Crawl    bool `help:"Crawl the seed site and send its text as context"`
	MaxPages int  `short:"n" default:"${max_pages}" help:"Maximum pages to crawl"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	MaxPages int  `short:"n" default:"${max_pages}" help:"Maximum pages to crawl"`
	JSON     bool `name:"json" help:"Print the corpus as JSON"`
}

// needsCrawl reports whether the parsed command builds a corpus.
func (c *CLI) needsCrawl(cmd string) bool {
	switch cmd {
	case "crawl":
		return true
	case "ask":
		return c.Ask.Crawl
	case "chat":
		return c.Chat.Crawl
	}
	return false
}
