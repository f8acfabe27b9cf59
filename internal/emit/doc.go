// Package emit is the feature registration emitter. For each feature, in
// manifest order, it binds the feature accessor to an initializer closure
// that calls the feature constructor with one rendered argument per
// property. Features may be rendered concurrently; blocks are reassembled in
// declaration order so output is byte-identical across runs.
package emit
