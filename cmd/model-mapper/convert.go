package main

import (
	"github.com/spf13/cobra"

	"model-mapper/document"
	"model-mapper/serialize"
)

func (a *app) convertCmd() *cobra.Command {
	var modelName, from, to string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a document to another format",
		Long: `Convert reads a document (a file, or standard input) as an instance of
the given model and writes it to standard output in the target format.
The input format defaults to the file extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model(modelName)
			if err != nil {
				return err
			}

			src, err := format(from, args)
			if err != nil {
				return err
			}

			dst, err := document.ParseFormat(to)
			if err != nil {
				return err
			}

			raw, err := a.input(args)
			if err != nil {
				return err
			}

			s := a.serializer()

			inst, err := s.Unmarshal(m, src, raw)
			if err != nil {
				return err
			}

			for _, v := range serialize.Validate(inst) {
				a.logger.Warn("invalid value", "model", m.Name(), "violation", v)
			}

			out, err := s.Marshal(inst, dst)
			if err != nil {
				return err
			}

			_, err = a.out.Write(out)

			return err
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "model name")
	cmd.Flags().StringVar(&from, "from", "", "input format (default: file extension)")
	cmd.Flags().StringVar(&to, "to", string(document.JSON), "output format")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
