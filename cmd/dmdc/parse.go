package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dmdtool/dmd/internal/config"
	"github.com/dmdtool/dmd/internal/dslparser"
)

func newParseCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "parse",
		Short: "Parse DSL source and print a summary of the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger(cmd, log)

			resolved, err := config.ResolveSource(sourceOverrides(sourceFlags(cmd)))
			if err != nil {
				return err
			}

			files, err := collectSourceFiles(resolved.SourceDirs)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("dmdc: no .dmd/.dmdx files found under %v", resolved.SourceDirs)
			}

			model, err := dslparser.Parse(files...)
			if err != nil {
				return err
			}

			fmt.Printf("parsed %d mixin(s), %d table(s) from %d file(s)\n", len(model.Mixins), len(model.Tables), len(files))
			for _, table := range model.Tables {
				fmt.Printf("  %s: %d field(s), %d foreign key(s), %d index(es)\n",
					table.Name, len(table.Fields), len(table.ForeignKeys), len(table.Indexes))
			}
			return nil
		},
	}
}
