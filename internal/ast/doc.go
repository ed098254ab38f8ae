// Package ast describes the BL statement tree.
//
// A tree is built once, bottom-up, by the parser and is read-only
// afterwards. Every node owns its children; there are no back pointers.
//
// Invariants:
//   - the body of IF, IF_ELSE (both branches) and WHILE is always a BLOCK;
//   - only IF, IF_ELSE and WHILE carry a condition, only CALL carries a name;
//   - only BLOCK has an ordered list of children, possibly empty.
package ast
