// Package history persists a record of every transcript acquisition in
// a SQLite database so repeated runs can skip videos that were already
// fetched.
package history
