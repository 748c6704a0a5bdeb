// Package notation converts infix expressions to postfix and prefix notation
// and evaluates the results with an explicit stack machine.
//
// Expressions are single-line ASCII strings of single-character operands and
// operators. Numeric expressions use decimal numbers ("3+4*5", "(2.5-1)^2");
// symbolic expressions use letters ("a+b*c"). The two kinds never mix within
// one expression. Spaces are ignored everywhere.
//
// Validate checks an infix string before anything else touches it. Convert
// runs the shunting-yard algorithm left to right for postfix or right to left
// for prefix, recording every push, pop, and append so that a front end can
// show the conversion step by step. Evaluate reduces a converted numeric
// string to a number, recording each reduction as a Step, and Reduce does the
// same for a symbolic string by substituting placeholder letters until one
// symbol remains.
//
// Division by zero is fatal to an evaluation; IsFatal reports it. Every other
// evaluation failure yields NaN alongside its error.
package notation
