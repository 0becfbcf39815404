package main

import (
	"fmt"

	"github.com/0xalexb/hjarta-yaml/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) hasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "has FILE PATH",
		Short: "Report whether PATH exists; exits with status 1 when it does not",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			accessor, err := c.load(args[0])
			if err != nil {
				return err
			}

			if !accessor.Has(config.ParsePath(args[1])...) {
				_, err = fmt.Fprintln(c.out, c.paint(color.FgRed, "false"))
				if err != nil {
					return err
				}

				return errAbsent
			}

			_, err = fmt.Fprintln(c.out, c.paint(color.FgGreen, "true"))

			return err
		},
	}
}
