package main

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-yaml/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) getCommand() *cobra.Command {
	var (
		typeName string
		def      string
		members  []string
	)

	cmd := &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at PATH converted to --type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option

			readValue, found := readers[typeName]

			if len(members) > 0 {
				enumOpt, enumReader, err := enumSupport(members)
				if err != nil {
					return err
				}

				opts = append(opts, enumOpt)
				readValue, found = enumReader, true
			}

			if !found {
				return unknownType(typeName)
			}

			accessor, err := c.load(args[0], opts...)
			if err != nil {
				return err
			}

			path := config.ParsePath(args[1])

			value, err := readValue(accessor, path)
			if err != nil {
				if !cmd.Flags().Changed("default") {
					return err
				}

				c.logger.Debug("default applied",
					slog.String("path", path.String()),
					slog.String("reason", err.Error()),
				)

				value = def
			}

			text, err := render(value)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.out, c.paint(color.FgCyan, text))

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&typeName, "type", "t", "string", "target type: "+typeNames())
	flags.StringVarP(&def, "default", "d", "", "value printed when the path is missing or cannot be converted")
	flags.StringSliceVar(&members, "enum", nil, "accepted member names; selects the "+typeEnum+" type")

	return cmd
}
