// Package models defines the core domain models for trip budgets.
//
// # Models
//
//   - Trip: a planned group trip with a budget and a member list
//   - Expense: one payment by a member, split among participants
//   - Category: the closed set of expense categories
//   - Payment: a recorded transfer between two members settling debt
//   - Balance, SettlementInstruction: derived values, never persisted
//
// Members and payers are identified by display name strings, the same way the
// trip member list stores them.
//
// # Design Principles
//
//  1. Expenses are immutable once created; they are deleted, never edited
//  2. Derived values are recomputed from an expense snapshot on every request
//  3. Relationships use ID strings instead of pointers
package models
