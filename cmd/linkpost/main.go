package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkpost"
	"github.com/fwojciec/linkpost/gemini"
	"github.com/fwojciec/linkpost/goquery"
	lphttp "github.com/fwojciec/linkpost/http"
	"github.com/fwojciec/linkpost/openai"
	"github.com/fwojciec/linkpost/pipeline"
	"github.com/fwojciec/linkpost/readability"
	"github.com/fwojciec/linkpost/rod"
	lpslog "github.com/fwojciec/linkpost/slog"
	"github.com/fwojciec/linkpost/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFile is loaded into the environment before flags are parsed.
	// A missing file is not an error.
	EnvFile string

	// Services for end-to-end testing. Run wires real implementations for
	// any left nil.
	Articles linkpost.ArticleService
	Posts    linkpost.PostService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := loadEnvFile(m.EnvFile); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkpost"),
		kong.Description("Turn web articles into LinkedIn posts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linkpost --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Verbose = cli.Verbose

	articles := m.Articles
	if articles == nil {
		fetcher, cleanup, err := newFetcher(cli, deps.Logger, stderr)
		if err != nil {
			return err
		}
		defer cleanup()

		extractor := lpslog.NewLoggingExtractor(newExtractor(cli.Extractor), deps.Logger)
		articles = pipeline.NewArticleService(fetcher, extractor)
	}
	deps.Articles = articles

	posts := m.Posts
	if posts == nil {
		generator := lpslog.NewLoggingGenerator(newGenerator(cli), cli.Provider, deps.Logger)
		posts = pipeline.NewPostService(articles, generator)
	}
	deps.Posts = posts

	return kongCtx.Run(deps)
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// newFetcher builds the plain HTTP fetcher, backed by headless Chrome for
// anti-bot challenges when --browser is set. The returned cleanup closes
// both fetchers.
func newFetcher(cli *CLI, logger *slog.Logger, stderr io.Writer) (linkpost.Fetcher, func(), error) {
	opts := []lphttp.Option{lphttp.WithTimeout(cli.Timeout)}

	var browser linkpost.Fetcher
	if cli.Browser {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --browser")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		browser = lpslog.NewLoggingFetcher(rodFetcher, logger.With("fetcher", "browser"))
		opts = append(opts, lphttp.WithChallengeFetcher(browser))
	}

	fetcher := lpslog.NewLoggingFetcher(lphttp.NewFetcher(opts...), logger.With("fetcher", "http"))
	cleanup := func() {
		_ = fetcher.Close()
		if browser != nil {
			_ = browser.Close()
		}
	}
	return fetcher, cleanup, nil
}

func newExtractor(name string) linkpost.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

func newGenerator(cli *CLI) linkpost.Generator {
	switch cli.Provider {
	case "gemini":
		var opts []gemini.Option
		if cli.Model != "" {
			opts = append(opts, gemini.WithModel(cli.Model))
		}
		return gemini.NewGenerator(opts...)
	default:
		var opts []openai.Option
		if cli.Model != "" {
			opts = append(opts, openai.WithModel(cli.Model))
		}
		if cli.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cli.OpenAIBaseURL))
		}
		return openai.NewGenerator(opts...)
	}
}
