// Package config loads dsynth's runtime configuration and the schema and
// custom-type files consumed by the CLI.
//
// Configuration is resolved in layers: DefaultConfig, then a JSON or YAML
// file, then DSYNTH_* environment variables. Command-line flags are applied
// last by the CLI.
//
//	cfg, err := config.Load("dsynth.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A YAML configuration file looks like:
//
//	dataDir: ./data
//	listen: 127.0.0.1:8000
//	log:
//	  level: debug
//	  format: json
//	generator:
//	  workers: 4
//	  seed: 42
//	  maxCount: 10000
//	watch: true
//
// Schema files hold a single schema with its fields. When fields are
// omitted they are derived from schemaContent:
//
//	{
//	  "name": "users",
//	  "fields": [
//	    {"name": "id", "dataType": "uuid"},
//	    {"name": "age", "dataType": "integer", "minValue": 18, "maxValue": 90}
//	  ]
//	}
package config
