package main

import (
	"fmt"

	lpgin "github.com/fwojciec/linkpost/gin"
	"github.com/gin-gonic/gin"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if !deps.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := lpgin.NewServer(deps.Posts, deps.Logger)
	srv.Addr = c.Addr
	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())
	return srv.Serve(deps.Ctx)
}
