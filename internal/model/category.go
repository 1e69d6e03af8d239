package model

// Fixed category sets, one per kind. They only feed selection choices;
// the storage layer accepts any category string verbatim.
var (
	IncomeCategories = []string{
		"Cuota de socios",
		"Subvención",
		"Donación",
		"Venta de Lotería",
		"Otros",
	}

	ExpenseCategories = []string{
		"Donaciones",
		"Verbena",
		"Charlas y talleres",
		"Cesiones al Colegio",
		"Otros",
	}
)

// CategoriesFor returns the category choices for the given kind.
func CategoriesFor(k Kind) []string {
	if k == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}
