package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	ArchiveEnabled bool

	// Form page endpoints
	ShowFormHandler   gin.HandlerFunc
	SubmitFormHandler gin.HandlerFunc
	DownloadHandler   gin.HandlerFunc

	// API endpoints
	CreateItineraryHandler  gin.HandlerFunc
	ListItinerariesHandler  gin.HandlerFunc
	DownloadArchivedHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires an ItineraryHandler into a bundle.
func NewHandlerBundle(h *ItineraryHandler) *HandlerBundle {
	return &HandlerBundle{
		ArchiveEnabled:          h.Archive != nil,
		ShowFormHandler:         h.ShowForm,
		SubmitFormHandler:       h.SubmitForm,
		DownloadHandler:         h.Download,
		CreateItineraryHandler:  h.CreateItinerary,
		ListItinerariesHandler:  h.ListItineraries,
		DownloadArchivedHandler: h.DownloadArchived,
		HealthHandler:           Health,
	}
}
