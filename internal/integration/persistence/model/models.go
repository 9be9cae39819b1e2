package model

// All returns every model managed by the schema migration.
func All() []any {
	return []any{
		&CategoryModel{},
		&ExpenseModel{},
		&BudgetModel{},
	}
}
