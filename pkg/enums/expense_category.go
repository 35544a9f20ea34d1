package enums

import "fmt"

// ExpenseCategory classifies manual operating cost entries.
type ExpenseCategory string

const (
	ExpenseCategoryChefSalary ExpenseCategory = "chef_salary"
	ExpenseCategoryGroceries  ExpenseCategory = "groceries"
	ExpenseCategoryVegetables ExpenseCategory = "vegetables"
	ExpenseCategoryFruits     ExpenseCategory = "fruits"
	ExpenseCategoryUtilities  ExpenseCategory = "utilities"
	ExpenseCategoryRent       ExpenseCategory = "rent"
	ExpenseCategoryOther      ExpenseCategory = "other"
)

var validExpenseCategories = []ExpenseCategory{
	ExpenseCategoryChefSalary,
	ExpenseCategoryGroceries,
	ExpenseCategoryVegetables,
	ExpenseCategoryFruits,
	ExpenseCategoryUtilities,
	ExpenseCategoryRent,
	ExpenseCategoryOther,
}

// String implements fmt.Stringer.
func (e ExpenseCategory) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ExpenseCategory.
func (e ExpenseCategory) IsValid() bool {
	for _, candidate := range validExpenseCategories {
		if candidate == e {
			return true
		}
	}
	return false
}

// ExpenseCategories returns the closed category set in display order.
func ExpenseCategories() []ExpenseCategory {
	out := make([]ExpenseCategory, len(validExpenseCategories))
	copy(out, validExpenseCategories)
	return out
}

// ParseExpenseCategory converts raw input into an ExpenseCategory.
func ParseExpenseCategory(value string) (ExpenseCategory, error) {
	for _, candidate := range validExpenseCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense category %q", value)
}
