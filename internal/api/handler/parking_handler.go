package handler

import (
	"errors"
	"log"
	"net/http"

	"parking_admin/internal/domain"
	"parking_admin/internal/repository"
	"parking_admin/internal/service"

	"github.com/gin-gonic/gin"
)

type ParkingHandler struct {
	parkingService *service.ParkingService
}

func NewParkingHandler(ps *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{parkingService: ps}
}

// POST /api/checkin
func (h *ParkingHandler) CheckIn(c *gin.Context) {
	var dto domain.CheckInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	visit, err := h.parkingService.CheckIn(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrActiveVisitExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		// va chạm id/ticket là lỗi nội bộ hiếm gặp, không phải lỗi của người gọi
		log.Printf("Lỗi check-in: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi nhận xe vào"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "record": visit})
}

// POST /api/checkout
func (h *ParkingHandler) CheckOut(c *gin.Context) {
	var dto domain.CheckOutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dữ liệu không hợp lệ: " + err.Error()})
		return
	}

	receipt, err := h.parkingService.CheckOut(c.Request.Context(), dto)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrNoActiveVisit) || errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Lỗi check-out: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể ghi nhận xe ra"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "receipt": receipt})
}

// GET /api/records
func (h *ParkingHandler) ListRecords(c *gin.Context) {
	visits, err := h.parkingService.ListVisits(c.Request.Context())
	if err != nil {
		log.Printf("Lỗi lấy danh sách bản ghi: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách bản ghi"})
		return
	}
	if visits == nil {
		visits = []domain.Visit{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "rows": visits})
}

// DELETE /api/records/:id
func (h *ParkingHandler) DeleteRecord(c *gin.Context) {
	if err := h.parkingService.DeleteVisit(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("Lỗi xóa bản ghi: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể xóa bản ghi"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
