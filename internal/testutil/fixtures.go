package testutil

import "github.com/Veraticus/expense-tracker/internal/model"

// FixtureExpense is an expense without id or date.
type FixtureExpense struct {
	Description string
	Category    model.Category
	Amount      float64
}

// Fixture is a named, predefined set of expenses.
type Fixture struct {
	Name     string
	Expenses []FixtureExpense
}

// Total returns the sum of the fixture amounts.
func (f Fixture) Total() float64 {
	var total float64
	for _, e := range f.Expenses {
		total += e.Amount
	}
	return total
}

// FixtureScenario is five expenses over four categories totaling 70.25, of
// which 14.50 is food.
var FixtureScenario = Fixture{
	Name: "Scenario",
	Expenses: []FixtureExpense{
		{Description: "Lunch", Category: model.CategoryFood, Amount: 12.0},
		{Description: "Transporte", Category: model.CategoryTransport, Amount: 5.75},
		{Description: "Café", Category: model.CategoryFood, Amount: 2.50},
		{Description: "Libro", Category: model.CategoryEducation, Amount: 20.0},
		{Description: "Internet", Category: model.CategoryEntertainment, Amount: 30.0},
	},
}
