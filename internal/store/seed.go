package store

import (
	"time"

	"github.com/fardannozami/ecoplay/internal/domain"
)

// DemoQuizID is fixed so the seeded quiz keeps its id even before it is
// persisted.
const DemoQuizID = "q_plant_care_basics"

func DefaultQuizzes(now time.Time) []domain.Quiz {
	return []domain.Quiz{{
		ID:          DemoQuizID,
		Title:       "Plant Care Basics",
		Description: "Quick 5-question quiz about watering & planting.",
		CreatedAt:   now,
		Questions: []domain.Question{
			{
				Prompt:  "How often should most new saplings be watered?",
				Options: []string{"Daily", "Once a week", "Once a month", "Never"},
				Correct: 0,
				Points:  10,
			},
			{
				Prompt:  "Which season is often best to plant trees in many regions?",
				Options: []string{"Summer", "Winter", "Monsoon/Autumn", "Spring"},
				Correct: 3,
				Points:  10,
			},
			{
				Prompt:  "What is compost used for?",
				Options: []string{"Fuel", "Fertilizer", "Shoelace", "Clothing"},
				Correct: 1,
				Points:  10,
			},
			{
				Prompt:  "Mulching helps:",
				Options: []string{"Retain moisture", "Remove soil", "Attract pests", "Kill roots"},
				Correct: 0,
				Points:  5,
			},
			{
				Prompt:  "Which tool is safest for small tree planting?",
				Options: []string{"Chainsaw", "Shovel", "Hammer", "Blowtorch"},
				Correct: 1,
				Points:  5,
			},
		},
	}}
}
