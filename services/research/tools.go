package research

import (
	"github.com/tmc/langchaingo/tools"
	"go.uber.org/zap"
)

// ToolFactory builds the researcher's tools for one planning run.
type ToolFactory func(searchKey string) []tools.Tool

// NewToolFactory wires the search and website tools. cache may be nil.
func NewToolFactory(numResults int, cache Cache, logger *zap.Logger) ToolFactory {
	return func(searchKey string) []tools.Tool {
		search := NewSerperTool(searchKey, numResults)
		search.Cache = cache
		search.Logger = logger

		site := NewWebsiteTool()
		site.Logger = logger
		return []tools.Tool{search, site}
	}
}
