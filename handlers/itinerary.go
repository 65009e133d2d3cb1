package handlers

import (
	"context"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"time"

	itineraryRepo "tripplanner/database/repository/itinerary"
	"tripplanner/middleware"
	"tripplanner/models"
	"tripplanner/services/planner"
	"tripplanner/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPeople = 1
	defaultBudget = 1000

	missingKeysMessage = "Missing API keys. Please check your environment variables."
	supportMessage     = "Please try again or contact support if the problem persists."
)

type ItineraryHandler struct {
	Planner planner.PlannerService
	Archive itineraryRepo.ItineraryRepository // nil when archiving is disabled
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewItineraryHandler(p planner.PlannerService, archive itineraryRepo.ItineraryRepository, logger *zap.Logger) *ItineraryHandler {
	return &ItineraryHandler{Planner: p, Archive: archive, Logger: logger, Now: time.Now}
}

// pageData feeds index.tmpl.
type pageData struct {
	Form       models.TripRequest
	Days       int
	Today      string
	MinBudget  int
	MaxBudget  int
	Errors     []string
	Itinerary  *models.Itinerary
	ResultHTML template.HTML
}

func (h *ItineraryHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *ItineraryHandler) newPage(form models.TripRequest) pageData {
	days := -1
	checkIn, errIn := planner.ParseDate(form.CheckIn)
	checkOut, errOut := planner.ParseDate(form.CheckOut)
	if errIn == nil && errOut == nil {
		if d := planner.CalculateDays(checkIn, checkOut); d >= 0 {
			days = d
		}
	}
	return pageData{
		Form:      form,
		Days:      days,
		Today:     h.now().Format(planner.DateLayout),
		MinBudget: planner.MinBudget,
		MaxBudget: planner.MaxBudget,
	}
}

func (pd *pageData) setItinerary(it *models.Itinerary) {
	if it == nil {
		return
	}
	pd.Itinerary = it
	pd.ResultHTML = renderMarkdown(it.Result)
}

// latest loads the session's stored result; lookup failures only hide it.
func (h *ItineraryHandler) latest(c *gin.Context) *models.Itinerary {
	it, err := h.Planner.Latest(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		getLogger(c, h.Logger).Warn("failed to load session itinerary", zap.Error(err))
		return nil
	}
	return it
}

// ShowForm renders the planner page with default inputs and any stored result.
func (h *ItineraryHandler) ShowForm(c *gin.Context) {
	today := h.now()
	page := h.newPage(models.TripRequest{
		People:   defaultPeople,
		Budget:   defaultBudget,
		CheckIn:  today.Format(planner.DateLayout),
		CheckOut: today.AddDate(0, 0, 1).Format(planner.DateLayout),
	})
	page.setItinerary(h.latest(c))
	c.HTML(http.StatusOK, "index.tmpl", page)
}

// SubmitForm runs the planner for the posted form and re-renders the page.
func (h *ItineraryHandler) SubmitForm(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var form models.TripRequest
	if err := c.ShouldBind(&form); err != nil {
		form.Destination = c.PostForm("destination")
		page := h.newPage(form)
		page.Errors = []string{"Number of people and budget must be whole numbers"}
		if derr := planner.CheckDestination(form.Destination); derr != nil {
			_, page.Errors = describePlanError(derr)
		}
		page.setItinerary(h.latest(c))
		c.HTML(http.StatusBadRequest, "index.tmpl", page)
		return
	}

	it, err := h.Planner.Plan(c.Request.Context(), middleware.SessionID(c), form)
	page := h.newPage(form)
	if err != nil {
		status, messages := describePlanError(err)
		logger.Warn("itinerary request failed", zap.Error(err), zap.Int("status", status))
		page.Errors = messages
		page.setItinerary(h.latest(c))
		c.HTML(status, "index.tmpl", page)
		return
	}
	page.setItinerary(it)
	c.HTML(http.StatusOK, "index.tmpl", page)
}

// Download serves the session's itinerary as a text attachment.
func (h *ItineraryHandler) Download(c *gin.Context) {
	it := h.latest(c)
	if it == nil {
		c.String(http.StatusNotFound, "No itinerary has been generated yet.")
		return
	}
	sendItinerary(c, it)
}

// CreateItinerary is the JSON form of SubmitForm.
func (h *ItineraryHandler) CreateItinerary(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Fields decoded before a type mismatch are kept, so a blank destination still wins.
		var ve *planner.ValidationError
		if errors.As(planner.CheckDestination(req.Destination), &ve) {
			utils.JSONError(c, http.StatusBadRequest, ve.Message, ve.Code)
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	it, err := h.Planner.Plan(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		status, messages := describePlanError(err)
		var ve *planner.ValidationError
		if errors.As(err, &ve) {
			utils.JSONError(c, status, ve.Message, ve.Code)
			return
		}
		details := ""
		if len(messages) > 1 {
			details = messages[1]
		}
		utils.JSONError(c, status, messages[0], details)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// ListItineraries returns the most recent archived itineraries without their text.
func (h *ItineraryHandler) ListItineraries(c *gin.Context) {
	if h.Archive == nil {
		utils.JSONError(c, http.StatusNotFound, "archive disabled", "")
		return
	}
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > 100 {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	items, err := h.Archive.ListRecent(ctx, limit)
	if err != nil {
		getLogger(c, h.Logger).Error("failed to list itineraries", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list itineraries", err.Error())
		return
	}
	if items == nil {
		items = []models.Itinerary{}
	}
	c.JSON(http.StatusOK, gin.H{"itineraries": items})
}

// DownloadArchived serves an archived itinerary by id.
func (h *ItineraryHandler) DownloadArchived(c *gin.Context) {
	if h.Archive == nil {
		utils.JSONError(c, http.StatusNotFound, "archive disabled", "")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	it, err := h.Archive.GetByID(ctx, c.Param("id"))
	if errors.Is(err, itineraryRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "itinerary not found", c.Param("id"))
		return
	}
	if err != nil {
		getLogger(c, h.Logger).Error("failed to load itinerary", zap.Error(err), zap.String("id", c.Param("id")))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load itinerary", err.Error())
		return
	}
	sendItinerary(c, it)
}

func sendItinerary(c *gin.Context, it *models.Itinerary) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": it.FileName()})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(it.Result))
}

// describePlanError maps a planner error to a status and user-facing messages.
func describePlanError(err error) (int, []string) {
	var ve *planner.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, []string{ve.Message}
	case errors.Is(err, planner.ErrMissingCredentials):
		return http.StatusServiceUnavailable, []string{missingKeysMessage}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, []string{"An error occurred: the planner timed out", supportMessage}
	default:
		return http.StatusBadGateway, []string{"An error occurred: " + err.Error(), supportMessage}
	}
}
