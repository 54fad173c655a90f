// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import "github.com/shivakumar4147/surveyly/models"

// DefaultSeeds is the base questionnaire created on first start.
var DefaultSeeds = []models.QuestionSeed{
	{
		Code:    "age",
		Text:    "What is your age group?",
		Type:    models.TypeChoice,
		Options: []string{"10-20", "20-40", "40-60", "60+"},
	},
	{
		Code:    "location",
		Text:    "Where do you usually buy perfumes?",
		Type:    models.TypeChoice,
		Options: []string{"Brands", "Malls", "Online", "Supermarkets", "Other"},
	},
	{
		Code:    "frequency",
		Text:    "How often do you use perfumes?",
		Type:    models.TypeChoice,
		Options: []string{"Daily", "Few times a week", "Occasionally", "Rarely", "Never"},
	},
	{
		Code:    "reason",
		Text:    "Why do you use perfumes?",
		Type:    models.TypeChoice,
		Options: []string{"Personal hygiene", "Social occasions", "Professional settings", "Self-confidence", "Other"},
	},
	{
		Code:    "problems",
		Text:    "What problems have you faced with perfumes outside?",
		Type:    models.TypeChoice,
		Options: []string{"Too expensive", "Not portable", "Runs out quickly", "No problems", "Other"},
	},
	{
		Code:    "would_use",
		Text:    "Would you use a ₹5 per spray perfume vending machine?",
		Type:    models.TypeChoice,
		Options: []string{"Definitely", "Probably", "Not sure", "Probably not", "Definitely not"},
	},
	{
		Code:    "installation",
		Text:    "Where would you prefer to see these vending machines installed?",
		Type:    models.TypeChoice,
		Options: []string{"Malls", "Gyms", "Public restrooms", "Office buildings", "Other"},
	},
	{
		Code:    "test_public",
		Text:    "Would you test using a public perfume vending machine?",
		Type:    models.TypeChoice,
		Options: []string{"Yes", "No", "Maybe"},
	},
}
