// Package eval inspects and evaluates the formulas of the configuration
// table.
//
// Formulas are expressions over settings, such as
//
//	max(1, round(PIG_CYCLE * 480))
//	greater(PIG_CYCLE, 1.0, ceiling(PIG_CYCLE - 1), 0)
//	(REDUCE_DROPS) ? min(1.0, PIG_CYCLE) * 2 : 2
//
// written in the settings menu's expression language, which expr-lang parses
// as is once greater and ceiling are provided.
package eval
