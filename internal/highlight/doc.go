// Package highlight compares two values line by line and renders the result as
// two aligned columns of HTML markup for side-by-side display.
//
// The pipeline is: Normalize each value to canonical text, SplitLines, BuildTable
// (an LCS dynamic-programming table), Reconstruct an edit script from the table,
// Align the script into rows (pairing a delete with the insert that follows it
// and refining the pair with InlineDiff), and Render the rows as markup.
//
// Every call is self-contained. Nothing in this package blocks, logs, or returns
// an error; the O(m*n) table is the only significant allocation and callers are
// expected to bound input sizes before comparing.
package highlight
