package main

import (
	"fmt"

	"github.com/0xalexb/hjarta-yaml/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) checkCommand() *cobra.Command {
	var (
		typeName   string
		expression string
	)

	cmd := &cobra.Command{
		Use:   "check FILE PATH --expr EXPR",
		Short: "Validate the value at PATH with an expression over `value`",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			checkValue, found := checkers[typeName]
			if !found {
				return unknownType(typeName)
			}

			accessor, err := c.load(args[0])
			if err != nil {
				return err
			}

			value, err := checkValue(accessor, config.ParsePath(args[1]), expression)
			if err != nil {
				return err
			}

			text, err := render(value)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.out, "%s %s\n", c.paint(color.FgGreen, "ok"), text)

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&typeName, "type", "t", "string", "type the value is converted to before the check")
	flags.StringVarP(&expression, "expr", "e", "", "boolean expression, e.g. 'value > 0'")
	_ = cmd.MarkFlagRequired("expr")

	return cmd
}
