package main

import (
	"fmt"

	"github.com/fwojciec/linkpost"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if _, err := linkpost.ParseArticleURL(c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkpost.ErrorMessage(err))
		return err
	}

	article, err := deps.Articles.FetchArticle(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkpost.ErrorDetail(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, article.Text)
	return nil
}
