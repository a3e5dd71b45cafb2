package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/canvaslab/flowcanvas/pkg/services"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusBadRequest).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusNotFound).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError maps service errors to problem responses. Integrity
// violations keep their individual entries so the editor can highlight the
// offending nodes and edges.
func handleServiceError(c fiber.Ctx, err error) error {
	var integrityErr *services.IntegrityValidationError
	if errors.As(err, &integrityErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"type":       "integrity_error",
			"status":     fiber.StatusUnprocessableEntity,
			"detail":     integrityErr.Error(),
			"instance":   c.Path(),
			"violations": integrityErr.Violations,
		})
	}

	switch {
	case services.IsNotFound(err):
		return notFound(c, "Workflow not found")
	case services.IsValidationError(err):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}
