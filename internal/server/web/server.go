// Package web serves the userbook HTML interface: a chi router, CSRF and
// flash cookie handling, and the handlers for listing and editing records.
package web

import (
	"context"
	"errors"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userbook/internal/logging"
	"github.com/dmitrijs2005/userbook/internal/server/config"
	"github.com/dmitrijs2005/userbook/internal/server/models"
	"github.com/dmitrijs2005/userbook/internal/server/validation"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// userService is the subset of services.UserService the handlers use.
type userService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, f validation.Form) (*models.User, error)
	Update(ctx context.Context, id int64, f validation.Form) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type Server struct {
	address   string
	users     userService
	logger    logging.Logger
	secret    []byte
	csrfTTL   time.Duration
	templates map[string]*template.Template

	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

func NewServer(c *config.Config, l logging.Logger, us userService) (*Server, error) {
	t, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		address:         c.EndpointAddrHTTP,
		users:           us,
		logger:          l.With("module", "web"),
		secret:          []byte(c.SecretKey),
		csrfTTL:         c.CSRFTokenTTL,
		templates:       t,
		readTimeout:     c.ReadTimeout,
		writeTimeout:    c.WriteTimeout,
		shutdownTimeout: c.ShutdownTimeout,
	}, nil
}

// Routes returns the application router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(s.csrfProtect)

	r.Get("/", s.handleList)
	r.Get("/add", s.handleAddForm)
	r.Post("/add", s.handleAdd)
	r.Get("/edit/{id:[0-9]+}", s.handleEditForm)
	r.Post("/edit/{id:[0-9]+}", s.handleEdit)
	r.Post("/delete/{id:[0-9]+}", s.handleDelete)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found.")
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests for
// at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
