package planner

import (
	"fmt"

	"tripplanner/models"
	"tripplanner/services/crew"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const (
	researchDescription = "Find the best itinerary for a user based on their preferences"
	researchExpected    = "A summary hotels itineraries including Hotel Name, City, Cost per day, Amenities"
	planningDescription = "Generate a customized itinerary for a user based on their preferences"
	planningExpected    = "Shortlist top 10 hotel deals for the user based on their preferences. Include the booking URLs in the response"
)

// ResearcherGoal embeds every trip parameter in the researcher's goal.
func ResearcherGoal(stay *models.Stay) string {
	return fmt.Sprintf(
		"Scrape the web to find the best deals for %s, stay=%d days, budget=approx %d USD, people=%d, check-in %s and check-out %s from booking.com website.",
		stay.Destination, stay.Days, stay.Budget, stay.People,
		stay.CheckIn.Format(DateLayout), stay.CheckOut.Format(DateLayout),
	)
}

// BuildCrew assembles the research-then-plan crew for one stay.
func BuildCrew(stay *models.Stay, llm llms.Model, tools []crew.Tool, maxIterations int, logger *zap.Logger) *crew.Crew {
	researcher := &crew.Agent{
		Role:          "Travel Planner Expert",
		Goal:          ResearcherGoal(stay),
		Backstory:     "An expert analyst in planning travel",
		Tools:         tools,
		LLM:           llm,
		MaxIterations: maxIterations,
	}
	planner := &crew.Agent{
		Role:      "Travel Planner",
		Goal:      "Generate customized itineraries of hotels based on user preferences",
		Backstory: "An expert in generating hotel itinerary",
		LLM:       llm,
	}

	return &crew.Crew{
		Tasks: []*crew.Task{
			{Description: researchDescription, ExpectedOutput: researchExpected, Agent: researcher},
			{Description: planningDescription, ExpectedOutput: planningExpected, Agent: planner},
		},
		Process: crew.Sequential,
		Logger:  logger,
	}
}
