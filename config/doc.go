// Package config reads typed values out of YAML configuration documents.
//
// A document is parsed once with github.com/goccy/go-yaml and wrapped in an
// Accessor. Values are then read by path and converted to the Go type the
// caller asks for:
//
//	acc, err := config.LoadFile("config.yaml")
//	port, err := config.Get[int](acc, "server", "port")
//	timeout := config.GetOr(acc, 30*time.Second, "server", "timeout")
//	if acc.Has("tls") { ... }
//
// # Paths
//
// A Path is an ordered list of keys. Mapping children are addressed by key and
// sequence elements by decimal index. The string form uses colon (:) as the
// separator, as in the Provider path parameter:
//
//	"api:permissions"  -> config["api"]["permissions"]
//	"servers:0:host"   -> config["servers"][0]["host"]
//	""                 -> entire document
//
// Anchors, aliases, tags and "<<" merge keys are followed transparently.
//
// # Errors
//
// Lookups fail with an *Error that matches ErrKeyNotFound, ErrTypeMismatch or
// ErrUnknownEnumValue under errors.Is and carries the path and source position.
// GetOr swaps any of them for the supplied default.
//
// # Enums
//
// Types registered with WithEnum are decoded by case-sensitive name. Building
// with the noenum tag removes enum support entirely.
//
// # Providers
//
// The Parser, DataFetcher, Validator and Defaulter interfaces together with
// Provider decode whole sections into structs for dependency injection:
//
//	provider := config.Provider(&APIConfig{}, "services:api")
//	cfg, err := provider(yamlparser.NewParser(), fetcher)
package config
