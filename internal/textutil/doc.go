// Package textutil holds small string helpers used when turning manifest
// values into file names.
package textutil
