//go:build ignore

package main

import (
	"context"
	"log"

	"github.com/syssam/sqlitegen/compiler/gen"
	"github.com/syssam/sqlitegen/compiler/gen/sql"
	"github.com/syssam/sqlitegen/compiler/load"
)

func main() {
	schemas, err := load.File("../../compiler/load/testdata/pets.yaml")
	if err != nil {
		log.Fatalf("loading schema: %v", err)
	}
	cfg, err := gen.NewConfig(
		gen.WithTarget("./pets"),
		gen.WithPackage("pets"),
		gen.WithFeatures(gen.FeatureSchema),
	)
	if err != nil {
		log.Fatalf("creating config: %v", err)
	}
	g, err := gen.NewGraph(cfg, schemas...)
	if err != nil {
		log.Fatalf("building graph: %v", err)
	}
	if err := sql.Generate(context.Background(), g); err != nil {
		log.Fatalf("running sqlitegen codegen: %v", err)
	}
}
