package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns standard output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestConvert_File(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--schema", "testdata/people.yaml", "convert", "-m", "Person", "testdata/ada.xml")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Ada","tags":["math","poetry"]}`, out)
}

func TestConvert_Stdin(t *testing.T) {
	t.Parallel()

	out, err := run(t, "id: 7\nname: Ada\ntags: [math]\n",
		"--schema", "testdata/people.yaml", "convert", "-m", "Person", "--from", "yml", "--to", "toml")
	require.NoError(t, err)
	assert.Equal(t, "id = 7\nname = \"Ada\"\ntags = [\"math\"]\n", out)

	out, err = run(t, `{"id":7,"name":"Ada"}`,
		"--schema", "testdata/people.yaml", "--pretty", "convert", "-m", "Person", "--from", "json", "--to", "xml", "-")
	require.NoError(t, err)
	assert.Equal(t, "<person id=\"7\">\n  <name>Ada</name>\n</person>", out)
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no schema", []string{"convert", "-m", "Person", "testdata/ada.xml"}, "no declaration file"},
		{"unknown model", []string{"--schema", "testdata/people.yaml", "convert", "-m", "Persn", "testdata/ada.xml"}, "Person"},
		{"unknown format", []string{"--schema", "testdata/people.yaml", "convert", "-m", "Person", "--to", "csv", "testdata/ada.xml"}, "unknown format"},
		{"format not guessed", []string{"--schema", "testdata/people.yaml", "convert", "-m", "Person"}, "use --from"},
		{"missing input", []string{"--schema", "testdata/people.yaml", "convert", "-m", "Person", "testdata/none.json"}, "failed to read input"},
		{"missing model flag", []string{"--schema", "testdata/people.yaml", "convert", "testdata/ada.xml"}, "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--schema", "testdata/people.yaml", "validate", "-m", "Person", "testdata/ada.xml")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = run(t, `{"id":"seven","tags":["a","b","c"]}`,
		"--schema", "testdata/people.yaml", "validate", "-m", "Person", "--from", "json")
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, err.Error(), "3 violation(s)")
	assert.Contains(t, out, "cannot cast `seven` to integer")
}

func TestModels(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "--schema", "testdata/people.yaml", "models", "--format", "xml")
	require.NoError(t, err)

	want := `Person
  id integer [0..1]
  name string [1]
  tags string [0..2]
  xml <person>
    id -> id: cast scalar (rules)
    name -> name: cast scalar (rules)
    tag -> tags: collection of cast scalars (rules)
`
	assert.Equal(t, want, out)
}

func TestSchemaFromEnvironment(t *testing.T) {
	t.Setenv(envPrefix+"_SCHEMA", "testdata/people.yaml")

	out, err := run(t, "", "models")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Person\n"))
}
