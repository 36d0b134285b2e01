package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/modeltrust/mtrust/pkg/data"
)

const queryResultLimitDefault = 100

var (
	queryLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of results returned",
		Value: queryResultLimitDefault,
	}

	queryCmd = &cli.Command{
		Name:            "query",
		HideHelpCommand: true,
		Usage:           "List previously scored models from the local cache",
		Action:          cmdQueryScores,
		Flags: []cli.Flag{
			queryLimitFlag,
		},
	}
)

func cmdQueryScores(c *cli.Context) error {
	cfg := getConfig(c)

	list, err := data.ListScores(cfg.DB, c.Int(queryLimitFlag.Name))
	if err != nil {
		return fmt.Errorf("listing scores: %w", err)
	}

	return encode(list)
}
