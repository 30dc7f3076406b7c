// Package models defines the core domain records for Spendwise.
//
// # Records
//
//   - User: an account; Username is the key other users split with.
//   - Expense: one personal ledger entry. Entries created by settling a
//     group split carry SourceSplitID and are immutable afterwards.
//   - Budget: a spending limit over a rolling window, optionally scoped to
//     one category. Consumption is never stored; it is computed on read.
//   - GroupExpense and GroupExpenseSplit: one shared purchase and the
//     per-participant shares that settle independently.
//
// # Enumerations
//
// Category and Duration are closed sets declared once here and shared by
// validation, persistence and aggregation.
//
// # Conventions
//
//  1. IDs are UUID strings generated by the store.
//  2. Relationships are ID strings, never pointers.
//  3. Money is decimal.Decimal; CreatedAt-style bookkeeping fields are Unix seconds.
package models
