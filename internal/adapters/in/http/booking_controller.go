package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/domain"
	"github.com/medisched/booking-slots-engine/internal/core/json_types"
	"github.com/medisched/booking-slots-engine/internal/core/ports/in"
)

type BookingController struct {
	availability in.AvailabilityUseCase
	booking      in.BookingUseCase
	schedule     in.ScheduleUseCase
	cfg          *config.Config
}

func NewBookingController(
	availability in.AvailabilityUseCase,
	booking in.BookingUseCase,
	schedule in.ScheduleUseCase,
	cfg *config.Config,
) *BookingController {
	return &BookingController{
		availability: availability,
		booking:      booking,
		schedule:     schedule,
		cfg:          cfg,
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/doctors/:doctorId/slots", c.daySlots)
		api.GET("/doctors/:doctorId/slots/range", c.rangeSlots)
		api.GET("/doctors/:doctorId/schedule", c.getSchedule)
		api.PUT("/doctors/:doctorId/schedule", c.saveSchedule)
		api.GET("/patients/:patientId/appointments", c.patientAppointments)
		api.POST("/appointments", c.book)
		api.POST("/appointments/:id/reschedule", c.reschedule)
		api.POST("/appointments/:id/cancel", c.cancel)
		api.POST("/appointments/:id/reject", c.reject)
	}
}

type BookAppointmentRequest struct {
	PatientID     string          `json:"patientId" binding:"required"`
	DoctorID      string          `json:"doctorId" binding:"required"`
	Date          json_types.Date `json:"date" binding:"required"`
	Time          string          `json:"time" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash online"`
	Fee           float64         `json:"fee" binding:"min=0"`
}

type RescheduleRequest struct {
	Date json_types.Date `json:"date" binding:"required"`
	Time string          `json:"time" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (c *BookingController) daySlots(ctx *gin.Context) {
	doctorID := ctx.Param("doctorId")
	date := ctx.Query("date")
	if date == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	slots, err := c.availability.DaySlots(ctx.Request.Context(), doctorID, date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctorId": doctorID,
		"date":     date,
		"slots":    slots,
	})
}

func (c *BookingController) rangeSlots(ctx *gin.Context) {
	doctorID := ctx.Param("doctorId")
	from := ctx.Query("from")
	to := ctx.Query("to")
	if from == "" || to == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	result, err := c.availability.RangeSlots(ctx.Request.Context(), doctorID, from, to)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctorId": doctorID,
		"days":     result,
	})
}

func (c *BookingController) getSchedule(ctx *gin.Context) {
	schedule, err := c.schedule.GetSchedule(ctx.Request.Context(), ctx.Param("doctorId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, schedule)
}

func (c *BookingController) saveSchedule(ctx *gin.Context) {
	var schedule domain.DoctorSchedule
	if err := ctx.ShouldBindJSON(&schedule); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Идентификатор из пути авторитетнее тела запроса
	schedule.DoctorID = ctx.Param("doctorId")

	if err := c.schedule.SaveSchedule(ctx.Request.Context(), &schedule); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"saved": true})
}

func (c *BookingController) patientAppointments(ctx *gin.Context) {
	appointments, err := c.booking.PatientAppointments(ctx.Request.Context(), ctx.Param("patientId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"appointments": appointments,
	})
}

func (c *BookingController) book(ctx *gin.Context) {
	var req BookAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.booking.Book(ctx.Request.Context(), in.BookRequest{
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		Date:          req.Date.String(),
		Time:          req.Time,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Fee:           req.Fee,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, appointment)
}

func (c *BookingController) reschedule(ctx *gin.Context) {
	var req RescheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.booking.Reschedule(ctx.Request.Context(), ctx.Param("id"), req.Date.String(), req.Time)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

func (c *BookingController) cancel(ctx *gin.Context) {
	var req CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.booking.Cancel(ctx.Request.Context(), ctx.Param("id"), req.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

func (c *BookingController) reject(ctx *gin.Context) {
	var req CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.booking.Reject(ctx.Request.Context(), ctx.Param("id"), req.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, appointment)
}

// Маппинг таксономии ошибок ядра на HTTP статусы
func respondError(ctx *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsPolicyViolation(err):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		var collaborator *domain.CollaboratorError
		if errors.As(err, &collaborator) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *BookingController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(username), []byte(c.cfg.Auth.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(c.cfg.Auth.Password)) != 1 {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}
