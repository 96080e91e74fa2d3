// Package errprop computes Gaussian propagation of uncertainty through
// symbolic expressions.
//
// Expressions are written with every token separated by spaces or brackets:
// "x ^ 2 * sin (y / 2)" is valid, but "x^2" is a single (invalid) token. The
// operators are + - * / and ^, the functions are sin, cos, and log (natural
// logarithm), and the constants are math.pi (or π) and math.e. Operators
// split an expression at their leftmost occurrence, so "a - b - c" means
// "a - (b - c)"; use brackets to say otherwise.
//
// Parse builds an expression tree, Diff differentiates it symbolically, and
// Simplify removes the clutter differentiation leaves behind. Propagate
// combines these to compute the uncertainty of a function of measured
// variables held in a Registry, and LaTeX renders the pieces for reports.
//
package errprop
