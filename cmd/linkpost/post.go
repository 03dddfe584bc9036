package main

import (
	"fmt"

	"github.com/fwojciec/linkpost"
)

// Run executes the post command.
func (c *PostCmd) Run(deps *Dependencies) error {
	post, err := deps.Posts.CreatePost(deps.Ctx, &linkpost.Request{URL: c.URL, Message: c.Message})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkpost.ErrorDetail(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, post.Text)
	return nil
}
