package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/bfchat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
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

	reply, err := deps.Conversation.Ask(deps.Ctx, session.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bfchat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, reply.Content)
	return nil
}
