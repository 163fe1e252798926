package finance

import "github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/finance"

// FixedExpenseForm is the fixed expense modal as submitted
type FixedExpenseForm struct {
	Periodo   string `form:"periodo" binding:"required"`
	Concepto  string `form:"concepto" binding:"required,max=160"`
	Categoria string `form:"categoria" binding:"required"`
	Monto     string `form:"monto" binding:"required"`
	Moneda    string `form:"moneda"`
	Notas     string `form:"notas" binding:"max=500"`
}

// FixedExpensePage is the fixed expenses page model for one quincena
type FixedExpensePage struct {
	Periodo finance.Periodo
	Items   []finance.FixedExpense
	Summary *finance.FixedExpenseSummary
}
