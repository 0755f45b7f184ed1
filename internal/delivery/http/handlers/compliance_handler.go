package handlers

import (
	"errors"
	"net/http"

	"github.com/esgpulse/supplier-compliance-service/internal/delivery/http/dto"
	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/usecase"
	alertdto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/alert"
	scandto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/scan"
	supplierdto "github.com/esgpulse/supplier-compliance-service/internal/usecase/dto/supplier"
	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	uc  usecase.ComplianceUsecase
	log *logger.Logger
}

func NewComplianceHandler(uc usecase.ComplianceUsecase, log *logger.Logger) *ComplianceHandler {
	return &ComplianceHandler{uc: uc, log: log}
}

// RunSupplierAlerts performs one full alert engine run. The request body is ignored.
func (h *ComplianceHandler) RunSupplierAlerts(c *gin.Context) {
	summary, err := h.uc.RunScan(c.Request.Context(), domain.TriggerHTTP)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RunScanResponse{
		Success:              true,
		RunID:                summary.RunID,
		AlertsCreated:        summary.AlertsCreated,
		SuppliersInactivated: summary.SuppliersInactivated,
		Timestamp:            summary.Timestamp,
	})
}

func (h *ComplianceHandler) GetCompanyAlerts(c *gin.Context) {
	var query dto.GetAlertsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := h.uc.GetAlerts(c.Request.Context(), &alertdto.GetAlertsInput{
		CompanyID:   c.Param("company_id"),
		AlertType:   query.Type,
		AlertStatus: query.Status,
		Limit:       query.Limit,
		Offset:      query.Offset,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.GetAlertsResponse{
		Alerts: make([]dto.Alert, len(output.Alerts)),
		Total:  output.Total,
		Limit:  output.Limit,
		Offset: output.Offset,
	}
	for i, a := range output.Alerts {
		resp.Alerts[i] = dto.Alert{
			ID:                        a.ID,
			CompanyID:                 a.CompanyID,
			SupplierID:                a.SupplierID,
			AlertType:                 a.AlertType,
			ReferenceName:             a.ReferenceName,
			ExpiryDate:                a.ExpiryDate.Format("2006-01-02"),
			AlertStatus:               a.AlertStatus,
			AlertCategory:             a.AlertCategory,
			AutoInactivationTriggered: a.AutoInactivationTriggered,
			CreatedAt:                 a.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComplianceHandler) UpdateAlertStatus(c *gin.Context) {
	var req dto.UpdateAlertStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.uc.UpdateAlertStatus(c.Request.Context(), &alertdto.UpdateAlertStatusInput{
		AlertID: c.Param("id"),
		Status:  req.AlertStatus,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComplianceHandler) ReactivateSupplier(c *gin.Context) {
	var req dto.ReactivateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := h.uc.ReactivateSupplier(c.Request.Context(), &supplierdto.ReactivateSupplierInput{
		SupplierID:    c.Param("id"),
		ReactivatedBy: req.ReactivatedBy,
		Reason:        req.Reason,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReactivateSupplierResponse{
		SupplierID:    output.SupplierID,
		Status:        output.Status,
		ReactivatedAt: output.ReactivatedAt,
	})
}

func (h *ComplianceHandler) GetScanRuns(c *gin.Context) {
	var query struct {
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := h.uc.GetScanRuns(c.Request.Context(), &scandto.GetScanRunsInput{Limit: query.Limit})
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.GetScanRunsResponse{Runs: make([]dto.ScanRun, len(output.Runs))}
	for i, r := range output.Runs {
		resp.Runs[i] = dto.ScanRun{
			ID:                   r.ID,
			Trigger:              r.Trigger,
			StartedAt:            r.StartedAt,
			FinishedAt:           r.FinishedAt,
			AlertsCreated:        r.AlertsCreated,
			SuppliersInactivated: r.SuppliersInactivated,
			Success:              r.Success,
			Error:                r.Error,
			Details:              r.Details,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidAlertStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSupplierNotFound), errors.Is(err, domain.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrScanInProgress),
		errors.Is(err, domain.ErrReactivationBlocked),
		errors.Is(err, domain.ErrSupplierNotInactive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *ComplianceHandler) writeError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
