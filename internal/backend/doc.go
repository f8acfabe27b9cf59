// Package backend defines the contract a target language implements to take
// part in code generation, plus the naming helpers the implementations share.
// Implementations live under modules/ and register themselves with the
// registry package.
package backend
