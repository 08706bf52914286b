// Package numeral turns any finite number into a list of pattern components:
// number patterns from a Source plus the fixed distillation patterns that
// combine the top two values of an evaluation stack.
//
// Rules, applied recursively:
//
//   - A non-integer splits at the decimal point. The integer part (carrying
//     the sign) is emitted first, then the fraction digits as numerator and
//     the matching power of ten as denominator, a Divide, and an Add (or a
//     Subtract for negative targets). 0.125 becomes 0, 125, 1000, ÷, +.
//   - An integer up to DirectLimit is one Source call.
//   - A larger integer is grouped by place value: millions × 1 000 000, then
//     thousands × 1 000 merged with Add or Subtract, then the remainder. Only
//     the millions group carries the sign.
//
// Evaluate replays a component list on a stack and returns the value it
// denotes; it is the inverse used to check every decomposition.
package numeral
