package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"model-mapper/serialize"
)

var errInvalid = errors.New("document is invalid")

func (a *app) validateCmd() *cobra.Command {
	var modelName, from string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a document against its model",
		Long: `Validate reads a document as an instance of the given model and lists
every violation: missing required values, collection counts, choice groups,
allowed values and values that could not be cast.`,
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

			raw, err := a.input(args)
			if err != nil {
				return err
			}

			inst, err := a.serializer().Unmarshal(m, src, raw)
			if err != nil {
				return err
			}

			violations := serialize.Validate(inst)
			for _, v := range violations {
				fmt.Fprintln(a.out, v)
			}

			if len(violations) > 0 {
				return fmt.Errorf("%w: %d violation(s)", errInvalid, len(violations))
			}

			fmt.Fprintln(a.out, "ok")

			return nil
		},
	}

	cmd.Flags().StringVarP(&modelName, "model", "m", "", "model name")
	cmd.Flags().StringVar(&from, "from", "", "input format (default: file extension)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
