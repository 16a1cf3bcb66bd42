// Package cli implements the interactive shell of the Clea client: a
// small REPL over the session store, the membership toggler, and the
// routine builder. It exists to exercise the client core end to end; the
// web front-end consumes the same components through its own surface.
package cli
