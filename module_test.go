package hjarta

import (
	"io"
	"testing"
	"time"

	"github.com/0xalexb/hjarta-yaml/config"
	filefetcher "github.com/0xalexb/hjarta-yaml/config/fetcher/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestConfigModule_ProvidesAccessorAndParser(t *testing.T) {
	t.Parallel()

	var (
		root     *config.Accessor
		primary  *config.Accessor
		parser   config.Parser
		fetcher  config.DataFetcher
		duration time.Duration
	)

	options := &Options{
		ConfigFile:      "testdata/config.yaml",
		AccessorOptions: []config.Option{config.WithDurationUnit(time.Second)},
		Sections:        []Section{{Name: "primary", Path: config.Path{"database", "primary"}}},
	}

	app := fxtest.New(t,
		fx.Supply(createLogger("error", io.Discard)),
		configModule(options),
		fx.Invoke(fx.Annotate(
			func(a, p *config.Accessor, ps config.Parser, f config.DataFetcher) {
				root, primary, parser, fetcher = a, p, ps, f
			},
			fx.ParamTags("", `name:"primary"`),
		)),
	)

	app.RequireStart()

	assert.IsType(t, &filefetcher.Fetcher{}, fetcher)
	require.NotNil(t, parser)

	port, err := config.Get[int](primary, "port")
	require.NoError(t, err)
	assert.Equal(t, 5432, port)
	assert.Equal(t, config.Path{"database", "primary"}, primary.Path())

	duration, err = config.Get[time.Duration](root, "server", "timeout")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, duration)

	app.RequireStop()
}

func TestConfigModule_WithoutFile(t *testing.T) {
	t.Parallel()

	app := fxtest.New(t,
		configModule(&Options{}),
		fx.Invoke(func() {}),
	)

	app.RequireStart()
	app.RequireStop()
}

func TestConfigModule_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		options *Options
		err     error
	}{
		{
			name:    "sections without file",
			options: &Options{Sections: []Section{{Name: "db", Path: config.Path{"database"}}}},
			err:     ErrNoConfigFile,
		},
		{
			name: "empty section name",
			options: &Options{
				ConfigFile: "testdata/config.yaml",
				Sections:   []Section{{Name: "", Path: config.Path{"database"}}},
			},
			err: ErrEmptySectionName,
		},
	}

	for _, testInfo := range testCases {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			app := fx.New(fx.NopLogger, configModule(testInfo.options))
			require.ErrorIs(t, app.Err(), testInfo.err)
		})
	}
}
