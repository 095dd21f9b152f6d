// Package aprinter declares the schema of the APrinter firmware
// configuration editor: configurations that select a board, and boards that
// describe a platform and its peripherals. Editor returns the whole tree;
// the exported builders are the reusable pieces it is assembled from.
package aprinter
