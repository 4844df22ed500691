package core

// FinancialSummary is derived from the cached transactions and the
// active display currency. It is never persisted.
type FinancialSummary struct {
	Income   float64
	Expenses float64
	Balance  float64

	IncomeFormatted   string
	ExpensesFormatted string
	BalanceFormatted  string
}

// Summarize computes income, expense and balance totals over txs and
// formats each with the currency symbol. Pure function: no side
// effects, no I/O, order of txs does not matter.
func Summarize(txs []Transaction, cur DisplayCurrency) FinancialSummary {
	var income, expenses float64
	for _, t := range txs {
		switch t.Kind {
		case Income:
			income += t.Amount
		case Expense:
			expenses += t.Amount
		}
	}

	s := FinancialSummary{
		Income:   income,
		Expenses: expenses,
		Balance:  income - expenses,
	}
	s.IncomeFormatted = FormatAmount(cur.Symbol, s.Income)
	s.ExpensesFormatted = FormatAmount(cur.Symbol, s.Expenses)
	s.BalanceFormatted = FormatAmount(cur.Symbol, s.Balance)
	return s
}
