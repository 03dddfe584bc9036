package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/linkpost"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Verbose  bool
	Articles linkpost.ArticleService
	Posts    linkpost.PostService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Provider      string        `enum:"openai,gemini" default:"openai" env:"LINKPOST_PROVIDER" help:"Language model provider (openai, gemini)"`
	Model         string        `env:"LINKPOST_MODEL" help:"Override the provider's default model"`
	OpenAIBaseURL string        `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"Base URL of an OpenAI-compatible API"`
	Extractor     string        `enum:"cascade,readability,trafilatura" default:"cascade" env:"LINKPOST_EXTRACTOR" help:"Content extractor (cascade, readability, trafilatura)"`
	Timeout       time.Duration `default:"30s" env:"LINKPOST_TIMEOUT" help:"Page fetch timeout"`
	Browser       bool          `env:"LINKPOST_BROWSER" help:"Solve anti-bot challenges with headless Chrome"`
	Verbose       bool          `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Serve the web form and JSON API"`
	Post    PostCmd    `cmd:"" help:"Generate a post for an article URL or message"`
	Extract ExtractCmd `cmd:"" help:"Print the extracted article text without generating a post"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8002" env:"LINKPOST_ADDR" help:"Listen address"`
}

// PostCmd is the "post" subcommand.
type PostCmd struct {
	URL     string `short:"u" help:"Article URL"`
	Message string `short:"m" help:"Text to write about when no URL is given"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Article URL"`
}
