package hjarta_test

import (
	"errors"
	"fmt"

	hjarta "github.com/0xalexb/hjarta-yaml"
	"github.com/0xalexb/hjarta-yaml/config"

	"go.uber.org/fx"
)

// ServerConfig represents application server configuration.
// It implements both Defaulter and Validator interfaces from the config package.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SetDefaults sets default values for the configuration.
func (c *ServerConfig) SetDefaults() bool {
	if c.Host == "" {
		c.Host = "localhost"

		return true
	}

	return false
}

// Validate validates the configuration.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}

// Database is a service that reads its settings from a configuration section.
type Database struct {
	Address string
	Mode    string
}

// NewDatabase builds a Database from the "database" section.
func NewDatabase(section *config.Accessor) (*Database, error) {
	host, err := config.Get[string](section, "primary", "host")
	if err != nil {
		return nil, err
	}

	port := config.GetOr(section, 5432, "primary", "port")

	return &Database{
		Address: fmt.Sprintf("%s:%d", host, port),
		Mode:    config.GetOr(section, "standalone", "mode"),
	}, nil
}

// Example_appWithConfigFile shows a document loaded at startup and consumed
// both as a whole struct and through a named section.
func Example_appWithConfigFile() {
	var (
		server *ServerConfig
		db     *Database
	)

	services := fx.Module("services",
		fx.Provide(config.Provider(new(ServerConfig), "server")),
		fx.Provide(fx.Annotate(NewDatabase, fx.ParamTags(`name:"database"`))),
		fx.Invoke(func(s *ServerConfig, d *Database) {
			server = s
			db = d
		}),
	)

	app := hjarta.NewApp(
		hjarta.WithLogLevel("error"),
		hjarta.WithConfigFile("testdata/config.yaml"),
		hjarta.WithSection("database", "database"),
		hjarta.WithModules(services),
	)

	err := app.Start()
	if err != nil {
		fmt.Printf("Error starting app: %v\n", err)

		return
	}

	defer func() { _ = app.Stop() }()

	fmt.Printf("Server address: %s:%d\n", server.Host, server.Port)
	fmt.Printf("Database: %s (%s)\n", db.Address, db.Mode)
	// Output:
	// Server address: api.example.com:9000
	// Database: db.example.com:5432 (replicated)
}
