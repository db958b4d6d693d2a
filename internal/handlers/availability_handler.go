package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/elinspetor87/ai-vision-studio-sub000/internal/domain/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/dto"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/httperr"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/httpresp"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/middleware"
	ucAvailability "github.com/elinspetor87/ai-vision-studio-sub000/internal/usecase/availability"
	"github.com/elinspetor87/ai-vision-studio-sub000/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	catalog *domain.SlotCatalog

	check  *ucAvailability.CheckAvailability
	list   *ucAvailability.ListAvailability
	set    *ucAvailability.SetAvailability
	reset  *ucAvailability.ResetAvailability
	copy   *ucAvailability.CopyAvailability
	delete *ucAvailability.DeleteAvailabilityRecord

	log *zap.Logger
}

func NewAvailabilityHandler(
	catalog *domain.SlotCatalog,
	check *ucAvailability.CheckAvailability,
	list *ucAvailability.ListAvailability,
	set *ucAvailability.SetAvailability,
	reset *ucAvailability.ResetAvailability,
	copyUC *ucAvailability.CopyAvailability,
	deleteUC *ucAvailability.DeleteAvailabilityRecord,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		catalog: catalog,
		check:   check,
		list:    list,
		set:     set,
		reset:   reset,
		copy:    copyUC,
		delete:  deleteUC,
		log:     log,
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	httpresp.List(c, h.catalog.Labels())
}

func (h *AvailabilityHandler) Check(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	res, err := h.check.Execute(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// ADMIN
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	records, err := h.list.Execute(c.Request.Context(), ucAvailability.ListAvailabilityInput{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, records)
}

func (h *AvailabilityHandler) Set(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if !h.bind(c, &req) {
		return
	}

	record, err := h.set.Execute(c.Request.Context(), ucAvailability.SetAvailabilityInput{
		Date:      req.Date,
		TimeSlots: req.TimeSlots,
		IsBlocked: req.IsBlocked,
		Notes:     req.Notes,
		Actor:     actor(c),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, record)
}

func (h *AvailabilityHandler) Reset(c *gin.Context) {
	var req dto.ResetAvailabilityRequest
	if !h.bind(c, &req) {
		return
	}

	deleted, err := h.reset.Execute(c.Request.Context(), req.Date, actor(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, dto.ResetAvailabilityResponse{Success: true, Deleted: deleted})
}

func (h *AvailabilityHandler) Copy(c *gin.Context) {
	var req dto.CopyAvailabilityRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.copy.Execute(c.Request.Context(), ucAvailability.CopyAvailabilityInput{
		SourceDate:  req.SourceDate,
		TargetDates: req.TargetDates,
		Actor:       actor(c),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	// partial failure is reported in the body, the request itself succeeded
	httpresp.OK(c, dto.NewCopyAvailabilityResponse(result))
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, dto.SuccessResponse{Success: true})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AvailabilityHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, validators.ErrorCode(err), validators.FirstMessage(err))
		return false
	}
	return true
}

func (h *AvailabilityHandler) writeError(c *gin.Context, err error) {
	switch code := httperr.Code(err); code {
	case domain.CodeInvalidDate, domain.CodeInvalidInput:
		httperr.BadRequest(c, code, err.Error())
	case domain.CodeNotFound:
		httperr.NotFound(c, code, err.Error())
	default:
		h.log.Error("availability request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Unexpected error, try again later.")
	}
}

func actor(c *gin.Context) string {
	return c.GetString(middleware.ContextUserEmail)
}

