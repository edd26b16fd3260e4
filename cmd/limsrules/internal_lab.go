package main

import (
	"github.com/spf13/cobra"

	"limsrules/internal/repository"
	"limsrules/internal/rules"
)

var (
	labFrom    string
	labSpecID  int64
	labTargets string
	labOut     string
)

var internalLabCmd = &cobra.Command{
	Use:   "internal-lab",
	Short: "Fill an internal-lab rules template with spec id and targets",
	Long: `Load a template rules JSON, stamp the spec id on every rule and
write one target per perfect/not-OK rule pair. Targets are given as a
list like "[0.55, 2, 0.85, 90]" and must match the template's
parameter count.`,
	RunE: runInternalLab,
}

func init() {
	internalLabCmd.Flags().StringVar(&labFrom, "from", "", "template rules JSON path")
	internalLabCmd.Flags().Int64Var(&labSpecID, "spec-id", 0, "spec_id to assign to every rule")
	internalLabCmd.Flags().StringVar(&labTargets, "targets", "", `targets list, e.g. "[0.55, 2, 0.85, 90]"`)
	internalLabCmd.Flags().StringVar(&labOut, "out", "", "output JSON path")
	_ = internalLabCmd.MarkFlagRequired("from")
	_ = internalLabCmd.MarkFlagRequired("spec-id")
	_ = internalLabCmd.MarkFlagRequired("targets")
	_ = internalLabCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(internalLabCmd)
}

func runInternalLab(cmd *cobra.Command, args []string) error {
	if err := requireFile(labFrom); err != nil {
		return err
	}

	targets, err := rules.ParseTargetList(labTargets)
	if err != nil {
		return err
	}

	doc, err := repository.LoadRulesDocument(labFrom)
	if err != nil {
		return err
	}
	if err := rules.FillInternalLabTemplate(doc, labSpecID, targets); err != nil {
		return err
	}

	if err := repository.SaveJSON(labOut, doc); err != nil {
		return err
	}
	logger.Info("wrote internal-lab rules JSON", "path", labOut, "targets", len(targets))
	return nil
}
