package api

import (
	"net/http"
)

const (
	AuthServiceName         = "spendwise.v1.AuthService"
	ExpenseServiceName      = "spendwise.v1.ExpenseService"
	BudgetServiceName       = "spendwise.v1.BudgetService"
	GroupExpenseServiceName = "spendwise.v1.GroupExpenseService"
)

const (
	AuthServiceRegisterProcedure      = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure         = "/" + AuthServiceName + "/Login"
	AuthServiceDeleteAccountProcedure = "/" + AuthServiceName + "/DeleteAccount"

	ExpenseServiceCreateExpenseProcedure     = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceGetExpenseProcedure        = "/" + ExpenseServiceName + "/GetExpense"
	ExpenseServiceListExpensesProcedure      = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure     = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure     = "/" + ExpenseServiceName + "/DeleteExpense"
	ExpenseServiceGetDailyTotalsProcedure    = "/" + ExpenseServiceName + "/GetDailyTotals"
	ExpenseServiceGetCategoryTotalsProcedure = "/" + ExpenseServiceName + "/GetCategoryTotals"

	BudgetServiceCreateBudgetProcedure = "/" + BudgetServiceName + "/CreateBudget"
	BudgetServiceGetBudgetProcedure    = "/" + BudgetServiceName + "/GetBudget"
	BudgetServiceListBudgetsProcedure  = "/" + BudgetServiceName + "/ListBudgets"
	BudgetServiceUpdateBudgetProcedure = "/" + BudgetServiceName + "/UpdateBudget"
	BudgetServiceDeleteBudgetProcedure = "/" + BudgetServiceName + "/DeleteBudget"

	GroupExpenseServiceCreateGroupExpenseProcedure = "/" + GroupExpenseServiceName + "/CreateGroupExpense"
	GroupExpenseServiceGetGroupExpenseProcedure    = "/" + GroupExpenseServiceName + "/GetGroupExpense"
	GroupExpenseServiceListMySplitsProcedure       = "/" + GroupExpenseServiceName + "/ListMySplits"
	GroupExpenseServiceMarkSplitPaidProcedure      = "/" + GroupExpenseServiceName + "/MarkSplitPaid"
)

// PublicProcedures can be called without a token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}

// procedureMux routes a service's requests by exact procedure path.
type procedureMux map[string]http.Handler

func (m procedureMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}
