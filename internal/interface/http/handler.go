package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/internal/domain/booking"
	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
	"github.com/giquina/armora-sub001/internal/infra/officers"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	bookingSvc booking.Service
	assessor   risk.Assessor
	authSvc    auth.Service
	catalog    *catalog.Catalog
	officers   *officers.Generator
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(bookingSvc booking.Service, assessor risk.Assessor, authSvc auth.Service, cat *catalog.Catalog, gen *officers.Generator, logger *slog.Logger) *Handler {
	return &Handler{
		bookingSvc: bookingSvc,
		assessor:   assessor,
		authSvc:    authSvc,
		catalog:    cat,
		officers:   gen,
		logger:     logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RiskQuestions lists the disclosure questions in display order.
func (h *Handler) RiskQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.assessor.Questions(), "maxScore": risk.MaxScore()})
}

type assessmentRequest struct {
	Answers []risk.Answer `json:"answers"`
}

// AssessRisk scores a possibly partial answer set for the running indicator.
// Nothing is stored.
func (h *Handler) AssessRisk(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	result, err := h.assessor.Assess(req.Answers)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type tierListing struct {
	catalog.ServiceTier
	Available      int `json:"available"`
	NearestMinutes int `json:"nearestMinutes"`
}

// ListTiers returns the catalog tiers together with mock officer availability.
func (h *Handler) ListTiers(c *gin.Context) {
	tiers := h.catalog.Tiers()
	availability := make(map[catalog.TierID]officers.Availability, len(tiers))
	for _, a := range h.officers.For(tiers) {
		availability[a.TierID] = a
	}
	items := make([]tierListing, 0, len(tiers))
	for _, tier := range tiers {
		a := availability[tier.ID]
		items = append(items, tierListing{ServiceTier: tier, Available: a.Available, NearestMinutes: a.NearestMinutes})
	}
	c.JSON(http.StatusOK, gin.H{"tiers": items})
}

// ListScenarios returns the journey scenarios and their recommended tiers.
func (h *Handler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": h.catalog.Scenarios()})
}

// Stats exposes the submission counters.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.bookingSvc.Stats())
}
