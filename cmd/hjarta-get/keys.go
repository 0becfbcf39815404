package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/0xalexb/hjarta-yaml/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) keysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys FILE [PATH]",
		Short: "List the keys of the mapping at PATH, or the indices of a sequence",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			accessor, err := c.load(args[0])
			if err != nil {
				return err
			}

			var path config.Path
			if len(args) == 2 {
				path = config.ParsePath(args[1])
			}

			keys, err := listKeys(accessor, path)
			if err != nil {
				return err
			}

			for _, key := range keys {
				_, err = fmt.Fprintln(c.out, c.paint(color.FgBlue, key))
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func listKeys(accessor *config.Accessor, path config.Path) ([]string, error) {
	keys, err := accessor.Keys(path...)
	if err == nil || !errors.Is(err, config.ErrTypeMismatch) {
		return keys, err
	}

	n, lenErr := accessor.Len(path...)
	if lenErr != nil {
		return nil, err
	}

	keys = make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	return keys, nil
}
