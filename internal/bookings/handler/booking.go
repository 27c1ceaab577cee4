package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"guestcal/internal/bookings/service"
	apperrors "guestcal/pkg/errors"
	httputil "guestcal/pkg/http"
	"guestcal/pkg/logger"
	"guestcal/pkg/model"
)

const monthFormat = "2006-01"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.GetRooms)
	router.GET("/api/v1/calendar", h.GetCalendar)
	router.GET("/api/v1/holds", h.GetHolderHolds)
	router.GET("/api/v1/holds/all", h.GetAllHolds)
	router.POST("/api/v1/holds/toggle", h.Toggle)
	router.POST("/api/v1/holds/confirm", h.Confirm)
	router.DELETE("/api/v1/holds/id/:id", h.Delete)
	router.PATCH("/api/v1/holds/id/:id/status", h.ChangeStatus)
	router.GET("/api/v1/quote", h.GetQuote)
	router.GET("/api/v1/quote/total", h.GetStayQuote)
}

func (h *BookingHandler) GetRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.RoomNames(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetRooms", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRooms", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetCalendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	monthStr := r.URL.Query().Get("month")
	month := time.Now().UTC()
	if monthStr != "" {
		parsed, err := time.Parse(monthFormat, monthStr)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("month must be in 2006-01 format")); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "GetCalendar", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		month = parsed
	}

	grid, err := h.service.LoadMonth(r.Context(), month)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetCalendar", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, grid); err != nil {
		h.log.Error("failed to write success response", "handler", "GetCalendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetHolderHolds(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	holderID := r.URL.Query().Get("holder_id")

	cells, err := h.service.HoldsForHolder(r.Context(), holderID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetHolderHolds", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cells); err != nil {
		h.log.Error("failed to write success response", "handler", "GetHolderHolds", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAllHolds(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllHolds", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	holds, total, err := h.service.AllHolds(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllHolds", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, holds, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAllHolds", "operation", "WritePaginated", "error", err)
	}
}

// Toggle maps rejection outcomes onto HTTP statuses: conflict and
// locked report 409, an unknown room 404, an applied or removed toggle
// 200 with the outcome in the body.
func (h *BookingHandler) Toggle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Toggle", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.ToggleDay(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Toggle", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	status := http.StatusOK
	switch result.Outcome {
	case service.ToggleConflict, service.ToggleLocked:
		status = http.StatusConflict
	case service.ToggleRoomNotFound:
		status = http.StatusNotFound
	}

	if err := httputil.WriteJSON(w, status, httputil.SuccessResponse{Data: result}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Toggle", "operation", "WriteJSON", "error", err)
	}
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Confirm", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	count, err := h.service.ConfirmHold(r.Context(), req.HolderID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Confirm", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int{"confirmed": count}); err != nil {
		h.log.Error("failed to write success response", "handler", "Confirm", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.DeleteHold(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req model.StatusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ChangeStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.ChangeHoldStatus(r.Context(), id, req.Status); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ChangeStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) GetQuote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	holderID := query.Get("holder_id")
	roomID := query.Get("room_id")

	quote, err := h.service.QuoteForRoom(r.Context(), holderID, roomID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetQuote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, quote); err != nil {
		h.log.Error("failed to write success response", "handler", "GetQuote", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetStayQuote(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	holderID := r.URL.Query().Get("holder_id")

	stay, err := h.service.StayQuote(r.Context(), holderID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetStayQuote", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stay); err != nil {
		h.log.Error("failed to write success response", "handler", "GetStayQuote", "operation", "WriteSuccess", "error", err)
	}
}
