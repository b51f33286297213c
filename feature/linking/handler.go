package linking

import (
	"errors"
	"strings"

	"osm-linker/core/lock"
	"osm-linker/core/logger"
	"osm-linker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the linking routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/linking")
	group.Get("/types", h.HandleTypes)
	group.Get("/report", h.HandleLastReport)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:id", h.HandleGetReport)
	group.Post("/run", h.HandleRun)
}

// HandleTypes lists the feature types.
// @Summary List Feature Types
// @Description Returns every registered map feature type with its Overpass query, required tags and distance threshold.
// @Tags linking
// @Produce json
// @Success 200 {array} reconcile.FeatureType
// @Router /linking/types [get]
func (h *Handler) HandleTypes(c *fiber.Ctx) error {
	return c.JSON(h.service.Types())
}

// HandleLastReport returns the most recent run report.
// @Summary Last Run Report
// @Description Returns the report of the most recent run started by this process.
// @Tags linking
// @Produce json
// @Success 200 {object} reconcile.RunReport
// @Failure 404 {object} map[string]string "No run yet"
// @Router /linking/report [get]
func (h *Handler) HandleLastReport(c *fiber.Ctx) error {
	report, ok := h.service.LastReport()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no run has completed yet"})
	}
	return c.JSON(report)
}

// HandleListReports lists archived run ids.
// @Summary List Archived Reports
// @Description Lists the ids of run reports stored in object storage.
// @Tags linking
// @Produce json
// @Success 200 {object} map[string]interface{} "Report ids"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /linking/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	ids, err := h.service.Reports(c.Context())
	if err != nil {
		logger.WithRequestID(h.service.logger, c).Error("Failed to list reports", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"reports": ids})
}

// HandleGetReport returns one run report.
// @Summary Get Run Report
// @Description Returns a run report by id, from memory or the archive.
// @Tags linking
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} reconcile.RunReport
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /linking/reports/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	id := c.Params("id")
	report, err := h.service.Report(c.Context(), id)
	if errors.Is(err, ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "id": id})
	}
	if err != nil {
		logger.WithRequestID(h.service.logger, c).Error("Failed to load report", zap.String("run_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleRun starts a reconciliation run and waits for it to finish.
// @Summary Run Reconciliation
// @Description Links processed map features to OSM nodes and registry addresses. Only one run executes at a time.
// @Tags linking
// @Produce json
// @Param kind query string false "osm, addresses or all" default(all)
// @Param dry_run query boolean false "Match without writing links"
// @Param type query string false "Comma separated feature types"
// @Success 200 {object} reconcile.RunReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Run in progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /linking/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.service.logger, c)

	kind, err := reconcile.ParseKind(c.Query("kind"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "kind": c.Query("kind")})
	}

	opts := reconcile.Options{DryRun: c.QueryBool("dry_run", false)}
	if raw := c.Query("type"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				opts.Types = append(opts.Types, t)
			}
		}
	}

	l.Info("Triggering reconciliation run",
		zap.String("kind", string(kind)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Strings("types", opts.Types),
	)

	report, err := h.service.Run(c.Context(), kind, opts)
	switch {
	case errors.Is(err, lock.ErrLocked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reconcile.ErrUnknownType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Reconciliation run failed", zap.Error(err))
		body := fiber.Map{"error": err.Error()}
		if report != nil {
			body["report"] = report
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	return c.JSON(report)
}
