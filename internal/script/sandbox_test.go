package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandbox_RemovedGlobals(t *testing.T) {
	e := newEngine(t)
	for _, name := range append(removedGlobals, "io", "os", "debug", "package") {
		t.Run(name, func(t *testing.T) {
			spec, err := e.LoadString(`return { missing = ` + name + ` == nil }`)
			require.NoError(t, err)
			assert.Equal(t, true, spec["missing"])
		})
	}
}

func TestSandbox_Require(t *testing.T) {
	e := newEngine(t)

	spec, err := e.LoadString(`return { upper = require("string").upper("x") }`)
	require.NoError(t, err)
	assert.Equal(t, "X", spec["upper"])

	_, err = e.LoadString(`require("os")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `module "os" is not available`)
}

func TestSandbox_PrintFormatting(t *testing.T) {
	e := newEngine(t)
	_, err := e.LoadString(`print("a", 1, true, nil) return {}`)
	require.NoError(t, err)
	assert.Equal(t, "a\t1\ttrue\tnil", e.LastOutput())
}
