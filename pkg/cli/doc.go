// Package cli implements the dsynth command-line interface.
//
// Commands:
//
//	dsynth generate <schema files or globs>   generate records to stdout or files
//	dsynth serve                              run the HTTP API
//	dsynth types                              list builtin (or stored custom) types
//	dsynth test-type <expression>             evaluate a custom type expression once
//	dsynth data backup|restore|export|clear   maintain the data directory
//	dsynth version                            print build information
//
// Configuration is resolved from defaults, a config file (--config or
// DSYNTH_CONFIG), DSYNTH_* environment variables and finally flags.
package cli
