// Package runner executes the operations of a schema graph without code
// generation. Records are column-keyed maps and statements are the same
// ones the generated code embeds, bound in the same order.
//
//	r := runner.New()
//	id, err := r.Insert(ctx, runner.Context(db), typ.InsertOp(), runner.Record{"name": "Rex"})
//	rec, err := r.Get(ctx, runner.Context(db), typ.GetOps()[0], id)
package runner
