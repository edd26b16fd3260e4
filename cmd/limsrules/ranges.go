package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"limsrules/internal/rules"
)

var (
	rangesTarget string
	rangesType   string
)

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "Print the acceptance ranges around a target",
	Long: `Print the quality ranges a target produces under the active or
limit banding rules, without generating a payload.

Example:
  limsrules ranges --target 12 --type active`,
	RunE: runRanges,
}

func init() {
	rangesCmd.Flags().StringVar(&rangesTarget, "target", "", "numeric target value")
	rangesCmd.Flags().StringVar(&rangesType, "type", "", "range rule type: active or limit")
	_ = rangesCmd.MarkFlagRequired("target")
	_ = rangesCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(rangesCmd)
}

func runRanges(cmd *cobra.Command, args []string) error {
	target, err := decimal.NewFromString(rangesTarget)
	if err != nil {
		return fmt.Errorf("invalid target %q", rangesTarget)
	}

	lines, err := rules.DescribeRanges(rules.RangeKind(rangesType), target)
	if err != nil {
		return err
	}
	for _, line := range lines {
		cmd.Println(line)
	}
	return nil
}
