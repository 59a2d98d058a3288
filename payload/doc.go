// Package payload sequences the first steps of a universal payload: it takes
// the boot loader's HOB list, moves it into memory the payload controls and
// publishes the result as the current list for the rest of the stage.
//
// A Context owns the current list. Before BuildHobs it is the boot loader's
// list; BuildHobs replaces it exactly once. Nothing here is safe for
// concurrent use: the stage runs on a single processor with interrupts
// masked.
package payload
