package envvar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geostack-dev/geostack/pkg/utils/envvar"
)

func TestExpandWith(t *testing.T) {
	t.Parallel()

	lookup := func(name string) (string, bool) {
		values := map[string]string{
			"APP_NAME": "geostack",
			"DOMAIN":   "example.org",
			"EMPTY":    "",
		}

		v, ok := values[name]

		return v, ok
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "no placeholders", input: "plain text", want: "plain text"},
		{name: "single placeholder", input: "${APP_NAME}", want: "geostack"},
		{name: "embedded placeholder", input: "https://api.${DOMAIN}/health", want: "https://api.example.org/health"},
		{name: "multiple placeholders", input: "${APP_NAME}.${DOMAIN}", want: "geostack.example.org"},
		{name: "undefined expands empty", input: "x${MISSING}y", want: "xy"},
		{name: "defined but empty", input: "x${EMPTY}y", want: "xy"},
		{name: "malformed braces kept", input: "${not valid}", want: "${not valid}"},
		{name: "bare dollar kept", input: "$APP_NAME", want: "$APP_NAME"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, envvar.ExpandWith(testCase.input, lookup))
		})
	}
}

func TestExpandUsesProcessEnvironment(t *testing.T) {
	t.Setenv("GEOSTACK_TEST_EXPAND", "from-env")

	assert.Equal(t, "from-env", envvar.Expand("${GEOSTACK_TEST_EXPAND}"))
}

func TestReferences(t *testing.T) {
	t.Parallel()

	assert.Nil(t, envvar.References("no placeholders"))
	assert.Equal(t, []string{"A", "B"}, envvar.References("${A}${B}${A}"))
}
