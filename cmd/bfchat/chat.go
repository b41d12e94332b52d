package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/bfchat"
)

// Chat commands typed at the prompt.
const (
	quitCommand    = "/quit"
	historyCommand = "/history"
)

// Run executes the chat command. The session ends on /quit, at end of
// input, or when deps.Ctx is canceled (Ctrl-C), even while waiting for input.
func (c *ChatCmd) Run(deps *Dependencies) error {
	var corpus *bfchat.Corpus
	if c.Crawl {
		var err error
		if corpus, err = buildCorpus(deps, c.MaxPages); err != nil {
			return err
		}
	}

	session, err := deps.Conversation.Start(deps.Ctx, deps.Config.SeedURL, corpus)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bfchat.ErrorMessage(err))
		return err
	}
	defer func() { _ = deps.Conversation.End(context.WithoutCancel(deps.Ctx), session.ID) }()

	for _, msg := range session.Messages {
		printMessage(deps.Stdout, msg)
	}
	fmt.Fprintf(deps.Stdout, "(%s pour quitter, %s pour revoir la conversation)\n", quitCommand, historyCommand)

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(deps.Stdin, done)

	for {
		if deps.Ctx.Err() != nil {
			fmt.Fprintln(deps.Stdout)
			return nil
		}
		fmt.Fprint(deps.Stdout, "> ")

		var line string
		select {
		case <-deps.Ctx.Done():
			fmt.Fprintln(deps.Stdout)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(deps.Stdout)
				return <-readErr
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case quitCommand:
			return nil
		case historyCommand:
			history, err := deps.Conversation.History(deps.Ctx, session.ID)
			if err != nil {
				if deps.Ctx.Err() != nil {
					return nil
				}
				fmt.Fprintf(deps.Stderr, "error: %s\n", bfchat.ErrorMessage(err))
				return err
			}
			for _, msg := range history.Messages {
				printMessage(deps.Stdout, msg)
			}
			continue
		}

		reply, err := deps.Conversation.Ask(deps.Ctx, session.ID, line)
		if err != nil {
			if deps.Ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", bfchat.ErrorMessage(err))
			return err
		}
		printMessage(deps.Stdout, reply)
	}
}

// readLines scans r on its own goroutine so the caller can stop waiting
// for input. lines is closed at end of input, after the scan error (or nil)
// is sent on errc. The goroutine stops sending once done is closed; a read
// blocked in r is left behind.
func readLines(r io.Reader, done <-chan struct{}) (lines <-chan string, errc <-chan error) {
	out := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-done:
				return
			}
		}
		errs <- scanner.Err()
	}()
	return out, errs
}

func printMessage(w io.Writer, msg *bfchat.Message) {
	fmt.Fprintf(w, "[%s] %s\n\n", msg.Role, msg.Content)
}
