package transport

import (
	"errors"
	"net/http"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/Shrvnsthr/Event-Booking/internal/service"
	"github.com/Shrvnsthr/Event-Booking/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Book handles POST /book. The user id comes from the verified token;
// a client-supplied userId that names someone else is rejected.
func (h *BookingHandler) Book(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req service.BookTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	if req.UserID != "" && req.UserID != claims.UserID && claims.Role != entity.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot book tickets for another user"})
		return
	}
	if req.UserID == "" {
		req.UserID = claims.UserID
	}

	result, err := h.bookingService.BookTickets(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		case errors.Is(err, entity.ErrNotEnoughTickets):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough tickets"})
		case errors.Is(err, entity.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Booking failed", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Event booked successfully",
		"bookedTickets": result.BookedTickets,
		"seatNumber":    result.SeatNumber,
		"totalAmount":   result.TotalAmount,
	})
}

// MyBookings handles GET /my-bookings?user_id=<id>.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		userID = claims.UserID
	}
	if userID != claims.UserID && claims.Role != entity.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot view bookings of another user"})
		return
	}

	bookings, err := h.bookingService.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching bookings", "error": err.Error()})
		return
	}

	message := "Bookings retrieved successfully"
	if len(bookings) == 0 {
		message = "No bookings found"
		bookings = []*entity.BookingWithEvent{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"bookings": bookings,
	})
}

// UserTickets handles GET /userTickets/:userId/:eventId and returns the
// summed ticket count the user already holds for the event.
func (h *BookingHandler) UserTickets(c *gin.Context) {
	claims, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	userID := c.Param("userId")
	eventID := c.Param("eventId")

	if userID != claims.UserID && claims.Role != entity.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot view tickets of another user"})
		return
	}

	tickets, err := h.bookingService.TicketsHeldBy(c.Request.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching user tickets", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
