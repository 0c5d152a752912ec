package commands

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v3"
)

// writeJSON prints v to the command's output stream.
func writeJSON(c *cli.Command, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(c.Root().Writer, string(out))
	return err
}

// singleArg returns the only positional argument or errMissing.
func singleArg(c *cli.Command, errMissing error) (string, error) {
	if c.Args().Len() != 1 {
		return "", errMissing
	}
	return c.Args().First(), nil
}

func guildFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "guild",
		Aliases:  []string{"g"},
		Usage:    "Guild ID, or GLOBAL for cross-guild cases",
		Required: true,
	}
}
