// Package hjarta wires YAML configuration into go.uber.org/fx applications.
//
// NewApp builds an Fx app with a slog logger and, when WithConfigFile is used,
// a *config.Accessor over the document. WithSection exposes parts of the
// document as name-tagged accessors.
package hjarta
