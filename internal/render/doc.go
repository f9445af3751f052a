// Package render produces the exact bytes of the files in a generated package.
// It does no I/O; persistence lives in the scaffold package.
package render
