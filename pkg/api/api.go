// Package api exposes the verification core over HTTP: a thin fiber
// surface implementing the Verify API and Submit API external
// interfaces. The core itself has no HTTP dependency; this package is
// the one collaborator that does.
package api

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/aurorareg/titlesentry/pkg/audit"
	"github.com/aurorareg/titlesentry/pkg/verify"
)

// Server wires a verify.Core and an optional audit.Sink behind a fiber
// app.
type Server struct {
	core  *verify.Core
	audit *audit.Sink
	app   *fiber.App
}

// New builds a Server. auditSink may be nil to disable audit recording.
func New(core *verify.Core, auditSink *audit.Sink) *Server {
	s := &Server{core: core, audit: auditSink, app: fiber.New()}

	s.app.Post("/v1/verify", s.handleVerify)
	s.app.Post("/v1/submit", s.handleSubmit)
	s.app.Get("/healthz", s.handleHealth)

	return s
}

// Listen starts the HTTP server on addr, blocking until it stops.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// verifyRequest is the Verify API request body: {title, context?}.
type verifyRequest struct {
	Title   string `json:"title"`
	Context string `json:"context,omitempty"`
}

func (s *Server) handleVerify(c fiber.Ctx) error {
	var req verifyRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	result := s.core.Verify(c.Context(), req.Title)

	if s.audit != nil {
		if correlationID, err := s.audit.Record(c.Context(), req.Title, result); err != nil {
			log.Printf("audit record failed for %q: %v", req.Title, err)
		} else {
			result.Metadata.CorrelationID = correlationID
		}
	}

	return c.JSON(result)
}

// submitRequest is the Submit API request body: {title, metadata?}.
type submitRequest struct {
	Title    string            `json:"title"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (s *Server) handleSubmit(c fiber.Ctx) error {
	var req submitRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	record, err := s.core.Submit(c.Context(), req.Title)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
