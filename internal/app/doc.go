// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation lifecycle (load, resolve,
// emit, then write or check), decoupled from any specific entrypoint like a
// CLI.
package app
