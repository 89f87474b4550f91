// Description: This file contains constants for the well-known variable names
// visible to scoring scripts, and keys for passing data through context objects.
package constants

const (
	EvalData = "eval_data" // object added to ctx objects sent to the evaluator, load with ctx.Value()
	Ctx      = "ctx"       // top-scope variable name for accessing input data from scripts

	ScoreVar  = "_score"  // relevance score of the current document, bound before each run when a scorer is attached
	DocVar    = "doc"     // per-document field access for the current document
	SourceVar = "_source" // source document access
	TimeVar   = "time"    // current time in milliseconds, registered at engine construction
)
