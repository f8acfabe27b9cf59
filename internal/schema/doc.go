// Package schema declares the gohcl decoding targets for HCL feature
// manifests. It carries no behavior; the hcl package translates these
// structs into the format-agnostic config model.
package schema
