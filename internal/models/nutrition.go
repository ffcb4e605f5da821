package models

// Macros are per-serving macronutrient estimates as free text ("25g").
type Macros struct {
	Protein FlexString `json:"protein"`
	Carbs   FlexString `json:"carbs"`
	Fat     FlexString `json:"fat"`
	Fiber   FlexString `json:"fiber"`
}

// NutritionData is the model's nutrition analysis of one recipe.
type NutritionData struct {
	Calories       FlexString  `json:"calories"`
	Macros         Macros      `json:"macros"`
	Vitamins       FlexStrings `json:"vitamins"`
	Minerals       FlexStrings `json:"minerals"`
	HealthBenefits FlexStrings `json:"healthBenefits"`
	Considerations FlexStrings `json:"considerations"`
	HealthScore    FlexString  `json:"healthScore"`
	Summary        string      `json:"summary"`
}

// PlaceholderNutrition is returned when the model reply has no usable JSON.
// The raw reply is surfaced as the summary.
func PlaceholderNutrition(summary string) *NutritionData {
	return &NutritionData{
		Calories: "Unable to calculate",
		Macros: Macros{
			Protein: "N/A",
			Carbs:   "N/A",
			Fat:     "N/A",
			Fiber:   "N/A",
		},
		Vitamins:       FlexStrings{},
		Minerals:       FlexStrings{},
		HealthBenefits: FlexStrings{},
		Considerations: FlexStrings{},
		HealthScore:    "N/A",
		Summary:        summary,
	}
}
