package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"limsrules/internal/repository"
	"limsrules/internal/rules"
)

var (
	removeIn       string
	removeOut      string
	removeInPlace  bool
	removeParamIDs []int64
)

var removeParamCmd = &cobra.Command{
	Use:   "remove-param",
	Short: "Remove all rules for one or more parametertype_id values",
	RunE:  runRemoveParam,
}

func init() {
	removeParamCmd.Flags().StringVar(&removeIn, "in", "", "input rules JSON path")
	removeParamCmd.Flags().Int64SliceVar(&removeParamIDs, "param-id", nil, "parametertype_id value(s) to remove")
	removeParamCmd.Flags().StringVar(&removeOut, "out", "", "output JSON path")
	removeParamCmd.Flags().BoolVar(&removeInPlace, "inplace", false, "overwrite the input file")
	_ = removeParamCmd.MarkFlagRequired("in")
	_ = removeParamCmd.MarkFlagRequired("param-id")
	rootCmd.AddCommand(removeParamCmd)
}

func runRemoveParam(cmd *cobra.Command, args []string) error {
	if !removeInPlace && removeOut == "" {
		return fmt.Errorf("specify --out unless using --inplace")
	}
	if err := requireFile(removeIn); err != nil {
		return err
	}

	doc, err := repository.LoadRulesDocument(removeIn)
	if err != nil {
		return err
	}
	res, err := rules.RemoveParams(doc, removeParamIDs)
	if err != nil {
		return err
	}

	out, err := resolveOutPath(removeIn, removeOut, removeInPlace, removeOut)
	if err != nil {
		return err
	}
	if err := repository.SaveJSON(out, doc); err != nil {
		return err
	}
	logger.Info("removed parameter rules", "path", out, "removed", res.Removed, "remaining", res.Total-res.Removed)
	return nil
}
