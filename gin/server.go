// Package gin serves the linkpost web interface and JSON API using the
// gin HTTP framework.
package gin

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/linkpost"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
const ShutdownTimeout = 5 * time.Second

//go:embed assets
var assets embed.FS

// Server is the HTTP server for the web form and the /process API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *gin.Engine

	// Addr is the bind address, e.g. ":8002".
	Addr string

	// AllowedOrigins lists origins allowed by CORS. Defaults to any origin.
	AllowedOrigins []string

	PostService linkpost.PostService
	Logger      *slog.Logger
}

// NewServer returns a new Server with its routes registered.
func NewServer(posts linkpost.PostService, logger *slog.Logger) *Server {
	s := &Server{
		router:         gin.New(),
		AllowedOrigins: []string{"*"},
		PostService:    posts,
		Logger:         logger,
	}

	tmpl := template.Must(template.ParseFS(assets, "assets/templates/*.html"))
	s.router.SetHTMLTemplate(tmpl)

	s.router.Use(requestID(), requestLogger(logger), recovery(logger))

	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		panic(err)
	}
	s.router.StaticFS("/static", http.FS(static))

	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/process", s.handleProcess)

	return s
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(s.router)
}

// Open binds the listener on Addr. Call Serve to start handling requests.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// URL returns the base URL of the open server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Serve handles requests until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.server == nil {
		return linkpost.Errorf(linkpost.EINVALID, "server is not open")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleProcess(c *gin.Context) {
	var req linkpost.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}

	post, err := s.PostService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		s.Logger.Error("process failed",
			"request_id", c.GetString(requestIDKey),
			"url", req.URL,
			"err", err,
		)
		c.JSON(http.StatusBadRequest, gin.H{"detail": linkpost.ErrorDetail(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": post.Text})
}
