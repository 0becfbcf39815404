// Package yaml provides the YAML implementation of config.Parser.
//
// Documents are parsed with github.com/goccy/go-yaml and navigated with a
// config.Accessor, so section paths follow the same rules as config.Get:
//
//	parser := yaml.NewParser()
//	var cfg Config
//	err := parser.Parse(data, &cfg, "api:permissions")
//
// Path handling:
//   - Empty path "" decodes the entire document
//   - "api:permissions" decodes config["api"]["permissions"]
//   - "servers:1" decodes the second element of the servers sequence
package yaml
