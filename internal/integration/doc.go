// Package integration runs the code generated from
// compiler/load/testdata/pets.yaml against SQLite. The generated package
// lives in ./pets; regenerate it after changing the generator:
//
//	go generate ./internal/integration
package integration

//go:generate go run generate.go
