// Package options defines CompileOptions, the functional-options
// configuration whose RemoveTailDrops and DedupFlows fields the
// flowtable and multitable emitters read (the policy package's compiler
// entry points take no options), together with its JSON encoding for
// persisting a compile configuration alongside the flow rules it
// produced.
package options
