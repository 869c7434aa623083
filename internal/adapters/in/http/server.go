// Package http exposes the identifier service over HTTP with echo.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"uidkit/internal/core/application/usecases/commands"
	"uidkit/internal/core/application/usecases/queries"
	"uidkit/internal/pkg/errs"
)

type (
	GenerateIdentifiersHandler interface {
		Handle(ctx context.Context, cmd commands.GenerateIdentifiersCommand) ([]commands.GeneratedIdentifier, error)
	}

	InspectIdentifierHandler interface {
		Handle(ctx context.Context, query queries.InspectIdentifierQuery) (queries.InspectIdentifierQueryResponse, error)
	}

	ConvertIdentifierHandler interface {
		Handle(ctx context.Context, query queries.ConvertIdentifierQuery) (queries.ConvertIdentifierQueryResponse, error)
	}

	GetRecentIssuancesHandler interface {
		Handle(ctx context.Context, query queries.GetRecentIssuancesQuery) ([]queries.IssuanceRecord, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	generateIdentifiersHandler GenerateIdentifiersHandler

	// Query handlers
	inspectIdentifierHandler  InspectIdentifierHandler
	convertIdentifierHandler  ConvertIdentifierHandler
	getRecentIssuancesHandler GetRecentIssuancesHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	generateIdentifiersHandler GenerateIdentifiersHandler,
	inspectIdentifierHandler InspectIdentifierHandler,
	convertIdentifierHandler ConvertIdentifierHandler,
	getRecentIssuancesHandler GetRecentIssuancesHandler,
) *Server {
	return &Server{
		generateIdentifiersHandler: generateIdentifiersHandler,
		inspectIdentifierHandler:   inspectIdentifierHandler,
		convertIdentifierHandler:   convertIdentifierHandler,
		getRecentIssuancesHandler:  getRecentIssuancesHandler,
	}
}

// RegisterHandlers mounts the API routes and the health check on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/identifiers", s.GenerateIdentifiers)
	api.GET("/identifiers", s.GetRecentIssuances)
	api.GET("/identifiers/:value", s.InspectIdentifier)
	api.GET("/identifiers/:value/convert", s.ConvertIdentifier)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GenerateIdentifiers handles POST /api/v1/identifiers - issues and records identifiers.
func (s *Server) GenerateIdentifiers(ctx echo.Context) error {
	var body NewIdentifiers
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	count := 1
	if body.Count != nil {
		count = *body.Count
	}

	cmd, err := commands.NewGenerateIdentifiersCommand(body.Version, count, body.Namespace, body.Name, body.Format)
	if err != nil {
		return respondError(ctx, err)
	}

	generated, err := s.generateIdentifiersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toIdentifiers(generated))
}

// InspectIdentifier handles GET /api/v1/identifiers/:value - describes an identifier.
func (s *Server) InspectIdentifier(ctx echo.Context) error {
	query, err := queries.NewInspectIdentifierQuery(ctx.Param("value"))
	if err != nil {
		return respondError(ctx, err)
	}

	info, err := s.inspectIdentifierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toInspection(info))
}

// ConvertIdentifier handles GET /api/v1/identifiers/:value/convert?to=v7.
func (s *Server) ConvertIdentifier(ctx echo.Context) error {
	query, err := queries.NewConvertIdentifierQuery(ctx.Param("value"), ctx.QueryParam("to"))
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := s.convertIdentifierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConversion(res))
}

// GetRecentIssuances handles GET /api/v1/identifiers?limit=N - lists recent issuances.
func (s *Server) GetRecentIssuances(ctx echo.Context) error {
	limit := queries.DefaultRecentLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "limit must be an integer",
			})
		}
		limit = parsed
	}

	query, err := queries.NewGetRecentIssuancesQuery(limit)
	if err != nil {
		return respondError(ctx, err)
	}

	records, err := s.getRecentIssuancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toIssuances(records))
}

func respondError(ctx echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = "Internal server error"
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidFormat),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
