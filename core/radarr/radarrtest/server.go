// Package radarrtest runs a fake Radarr instance for tests.
//
// The server speaks just enough of the v3 movie API for the sync: listing the
// catalog and adding movies, with API key checks, duplicate detection and
// failure injection. It listens on a loopback port and is shut down by
// t.Cleanup.
package radarrtest

import (
	"net"
	"strings"
	"sync"
	"testing"

	"radarr-sync/core/instance"
	"radarr-sync/core/radarr"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// Server is a fake Radarr instance.
type Server struct {
	app    *fiber.App
	url    string
	apiKey string

	mu            sync.Mutex
	movies        []radarr.Movie
	created       []radarr.AddMovieRequest
	listStatus    int
	listBody      string
	rawCatalog    string
	createStatus  int
	createAfter   int
	listRequests  int
	createdBodies []string
}

// New starts a fake instance accepting apiKey and holding movies.
func New(t testing.TB, apiKey string, movies ...radarr.Movie) *Server {
	t.Helper()

	s := &Server{
		apiKey: apiKey,
		movies: append([]radarr.Movie(nil), movies...),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	s.app.Use(s.authenticate)
	s.app.Get("/api/v3/movie", s.handleList)
	s.app.Post("/api/v3/movie", s.handleCreate)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("radarrtest: listen: %v", err)
	}
	s.url = "http://" + ln.Addr().String()

	go func() { _ = s.app.Listener(ln) }()
	t.Cleanup(func() { _ = s.app.Shutdown() })

	return s
}

// URL returns the base URL of the instance.
func (s *Server) URL() string {
	return s.url
}

// Endpoint returns a source endpoint pointing at the instance.
func (s *Server) Endpoint(name string) instance.Endpoint {
	return instance.Endpoint{Name: name, URL: s.url, APIKey: s.apiKey, Role: instance.RoleSource}
}

// Target returns a target endpoint pointing at the instance.
func (s *Server) Target(name string, sourceProfile, targetProfile int, pathFrom, pathTo string) instance.Target {
	ep := s.Endpoint(name)
	ep.Role = instance.RoleTarget
	return instance.Target{
		Endpoint:      ep,
		SourceProfile: sourceProfile,
		TargetProfile: targetProfile,
		PathFrom:      pathFrom,
		PathTo:        pathTo,
	}
}

// FailList makes every catalog request answer with status and body.
func (s *Server) FailList(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
	s.listBody = body
}

// ServeRawCatalog makes catalog requests answer 200 with body verbatim.
func (s *Server) ServeRawCatalog(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawCatalog = body
}

// FailCreates makes create requests answer with status once after movies
// have been added successfully.
func (s *Server) FailCreates(status int, after int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createStatus = status
	s.createAfter = after
}

// Movies returns the current catalog.
func (s *Server) Movies() []radarr.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]radarr.Movie(nil), s.movies...)
}

// Created returns every successful create request in arrival order.
func (s *Server) Created() []radarr.AddMovieRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]radarr.AddMovieRequest(nil), s.created...)
}

// CreatedBodies returns the raw JSON bodies of successful create requests.
func (s *Server) CreatedBodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.createdBodies...)
}

// ListRequests returns how many catalog requests were served.
func (s *Server) ListRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRequests
}

func (s *Server) authenticate(c *fiber.Ctx) error {
	if c.Query("apikey") != s.apiKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}
	return c.Next()
}

func (s *Server) handleList(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listRequests++

	if s.listStatus != 0 {
		return c.Status(s.listStatus).SendString(s.listBody)
	}
	if s.rawCatalog != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(s.rawCatalog)
	}
	return c.JSON(s.movies)
}

func (s *Server) handleCreate(c *fiber.Ctx) error {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		return c.Status(fiber.StatusUnsupportedMediaType).SendString("expected application/json")
	}

	var req radarr.AddMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createStatus != 0 && len(s.created) >= s.createAfter {
		return c.Status(s.createStatus).SendString("injected failure")
	}

	for _, m := range s.movies {
		if m.TMDbID == req.TMDbID {
			return c.Status(fiber.StatusBadRequest).JSON([]fiber.Map{{
				"propertyName":   "TmdbId",
				"errorMessage":   "This movie has already been added",
				"attemptedValue": req.TMDbID,
			}})
		}
	}

	movie := radarr.Movie{
		TMDbID:           req.TMDbID,
		Title:            req.Title,
		TitleSlug:        req.TitleSlug,
		Year:             req.Year,
		QualityProfileID: req.QualityProfileID,
		Monitored:        req.Monitored,
		Path:             req.Path,
	}
	s.movies = append(s.movies, movie)
	s.created = append(s.created, req)
	s.createdBodies = append(s.createdBodies, string(c.Body()))

	return c.Status(fiber.StatusCreated).JSON(movie)
}
