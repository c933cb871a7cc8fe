package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"model-mapper/document"
)

func (a *app) modelsCmd() *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the declared models",
		Long: `Models lists the models of the declaration file with their attributes.
With --format every model also shows how its attributes map to that format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   document.Format
				err error
			)

			if formatName != "" {
				if f, err = document.ParseFormat(formatName); err != nil {
					return err
				}
			}

			s := a.serializer()

			for _, decl := range a.file.Models {
				m, err := a.model(decl.Name)
				if err != nil {
					return err
				}

				fmt.Fprintln(a.out, m.Name())

				for _, attr := range m.Attributes() {
					fmt.Fprintf(a.out, "  %s %s [%s]\n", attr.Name(), attr.Type(), attr.Cardinality())
				}

				if f == "" {
					continue
				}

				p, err := s.Plan(m, f)
				if err != nil {
					return err
				}

				fmt.Fprintf(a.out, "  %s <%s>\n", f, p.Root)

				for _, step := range p.Steps {
					target := "-"
					if step.Attr != nil {
						target = step.Attr.Name()
					}

					fmt.Fprintf(a.out, "    %s -> %s: %s (%s)\n", step.Rule.Name(), target, step.Explanation, step.Source)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "also show the mapping for this format")

	return cmd
}
