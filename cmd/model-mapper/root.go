package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"model-mapper/document"
	"model-mapper/model"
	"model-mapper/registry"
	"model-mapper/schemafile"
	"model-mapper/serialize"
)

const envPrefix = "MODEL_MAPPER"

// Config keys, settable by flag or MODEL_MAPPER_<KEY>.
const (
	cfgKeySchema  = "schema"
	cfgKeyVerbose = "verbose"
	cfgKeyPretty  = "pretty"
)

var errNoSchema = errors.New("no declaration file, use --schema or " + envPrefix + "_SCHEMA")

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg    *viper.Viper
	in     io.Reader
	out    io.Writer
	logger *log.Logger

	global *registry.Global
	file   *schemafile.File
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		cfg:    viper.New(),
		in:     in,
		out:    out,
		logger: log.NewWithOptions(errOut, log.Options{Prefix: "model-mapper"}),
		global: registry.NewGlobal(),
	}

	cmd := &cobra.Command{
		Use:   "model-mapper",
		Short: "Convert and validate documents with declared models",
		Long: `model-mapper maps documents onto models declared in a YAML file and
writes them back in any supported format: xml, json, yaml and toml.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.String(cfgKeySchema, "", "model declaration file")
	flags.BoolP(cfgKeyVerbose, "v", false, "log debug details to stderr")
	flags.Bool(cfgKeyPretty, false, "indent the output")

	a.cfg.SetEnvPrefix(envPrefix)
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()
	_ = a.cfg.BindPFlags(flags)

	cmd.AddCommand(a.convertCmd(), a.validateCmd(), a.modelsCmd())

	return cmd
}

// setup loads the declaration file before any subcommand runs.
func (a *app) setup(*cobra.Command, []string) error {
	if a.cfg.GetBool(cfgKeyVerbose) {
		a.logger.SetLevel(log.DebugLevel)
	}

	path := a.cfg.GetString(cfgKeySchema)
	if path == "" {
		return errNoSchema
	}

	f, err := schemafile.Load(path)
	if err != nil {
		return err
	}

	models, err := f.Build(a.global)
	if err != nil {
		return err
	}

	a.file = f
	a.logger.Debug("declarations loaded", "path", path, "register", f.Register, "models", len(models))

	return nil
}

func (a *app) serializer() *serialize.Serializer {
	return serialize.New(serialize.WithLogger(a.logger), serialize.WithPretty(a.cfg.GetBool(cfgKeyPretty)))
}

// model resolves a model name in the register of the declaration file.
func (a *app) model(name string) (*model.Model, error) {
	reg, err := a.global.Get(a.file.Register)
	if err != nil {
		return nil, err
	}

	return registry.Get[*model.Model](reg, name)
}

// input reads the named file, or standard input for "" and "-".
func (a *app) input(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(a.in)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return data, nil
}

// format parses a format flag, falling back to the input file extension.
func format(flag string, args []string) (document.Format, error) {
	if flag == "" && len(args) > 0 {
		if i := strings.LastIndexByte(args[0], '.'); i >= 0 {
			flag = args[0][i+1:]
		}
	}

	if flag == "" {
		return "", fmt.Errorf("%w: cannot guess the input format, use --from", document.ErrUnknownFormat)
	}

	return document.ParseFormat(strings.ToLower(flag))
}
