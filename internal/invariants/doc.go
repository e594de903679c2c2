// Package invariants gates expensive consistency checks behind the
// "invariants" build tag.
//
// Callers guard checks with `if invariants.Enabled { ... }`; in regular
// builds the constant is false and the checks compile away.
//
//	go test -tags invariants ./...
package invariants
