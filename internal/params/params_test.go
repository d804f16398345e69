package params

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scalerStub struct{ name string }

func (s scalerStub) GDSValue() any {
	if s.name == "" {
		return nil
	}
	return s.name
}

func TestPlaceholderStr(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		p := NewCallParameters()
		p.Set("b", 1)
		p.Set("a", 3)
		assert.Equal(t, "$b, $a", p.PlaceholderStr())
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", NewCallParameters().PlaceholderStr())
	})

	t.Run("one token per argument", func(t *testing.T) {
		p := NewCallParameters(KV("graph_name", "g"), KV("config", NewMap()), KV("extra", nil))
		tokens := strings.Split(p.PlaceholderStr(), ", ")
		assert.Equal(t, []string{"$graph_name", "$config", "$extra"}, tokens)
	})
}

func TestEnsureJobIDInConfig(t *testing.T) {
	t.Run("existing snake id", func(t *testing.T) {
		p := NewCallParameters(KV("config", map[string]any{"job_id": "foo"}))
		id, err := p.EnsureJobIDInConfig()
		require.NoError(t, err)
		assert.Equal(t, "foo", id)
	})

	t.Run("existing camel id", func(t *testing.T) {
		p := NewCallParameters(KV("config", map[string]any{"jobId": "bar"}))
		id, err := p.EnsureJobIDInConfig()
		require.NoError(t, err)
		assert.Equal(t, "bar", id)
	})

	t.Run("nil id is replaced", func(t *testing.T) {
		cfg := map[string]any{"job_id": nil}
		p := NewCallParameters(KV("config", cfg))
		id, err := p.EnsureJobIDInConfig()
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, cfg["job_id"])
	})

	t.Run("ordered config", func(t *testing.T) {
		cfg := NewMap(KV("concurrency", 4))
		p := NewCallParameters(KV("graph_name", "g"), KV("config", cfg))
		id, err := p.EnsureJobIDInConfig()
		require.NoError(t, err)
		stored, ok := cfg.Get("job_id")
		require.True(t, ok)
		assert.Equal(t, id, stored)
		assert.Equal(t, []string{"concurrency", "job_id"}, cfg.Keys())
	})

	t.Run("idempotent", func(t *testing.T) {
		p := NewCallParameters(KV("config", NewMap()))
		first, err := p.EnsureJobIDInConfig()
		require.NoError(t, err)
		second, err := p.EnsureJobIDInConfig()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := NewCallParameters().EnsureJobIDInConfig()
		assert.ErrorIs(t, err, ErrMissingConfig)
	})
}

func TestJobID(t *testing.T) {
	_, ok := NewCallParameters().JobID()
	assert.False(t, ok)

	_, ok = NewCallParameters(KV("config", map[string]any{})).JobID()
	assert.False(t, ok)

	id, ok := NewCallParameters(KV("config", map[string]any{"job_id": "", "jobId": "x"})).JobID()
	assert.True(t, ok)
	assert.Equal(t, "x", id)
}

func TestToGDSConfig(t *testing.T) {
	var nilInt *int
	var nilLabels []string
	cfg := ToGDSConfig(
		KV("mutate_property", "pr"),
		KV("damping_factor", Ptr(0.85)),
		KV("max_iterations", nilInt),
		KV("node_labels", nilLabels),
		KV("relationship_types", []string{"*"}),
		KV("scaler", scalerStub{}),
		KV("sourceNodes", []int64{1, 2}),
		KV("username", nil),
		KV("log_progress", Ptr(false)),
	)

	assert.Equal(t, []string{"mutateProperty", "dampingFactor", "relationshipTypes", "sourceNodes", "logProgress"}, cfg.Keys())
	for _, k := range cfg.Keys() {
		v, _ := cfg.Get(k)
		assert.NotNil(t, v, k)
		assert.NotContains(t, k, "_")
	}
	v, _ := cfg.Get("dampingFactor")
	assert.Equal(t, 0.85, v)
	v, _ = cfg.Get("logProgress")
	assert.Equal(t, false, v)
}

func TestToGDSConfigValuer(t *testing.T) {
	cfg := ToGDSConfig(KV("scaler", scalerStub{name: "L2"}))
	v, ok := cfg.Get("scaler")
	require.True(t, ok)
	assert.Equal(t, "L2", v)
}

func TestCaseConversion(t *testing.T) {
	cases := map[string]string{
		"damping_factor":      "dampingFactor",
		"job_id":              "jobId",
		"relationship_types":  "relationshipTypes",
		"alreadyCamel":        "alreadyCamel",
		"heap_percentage_min": "heapPercentageMin",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToCamelCase(in), in)
	}

	snake := map[string]string{
		"nodeCount":         "node_count",
		"heapPercentageMax": "heap_percentage_max",
		"bytesMin":          "bytes_min",
		"treeView":          "tree_view",
		"already_snake":     "already_snake",
	}
	for in, want := range snake {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestMapJSONAndPlain(t *testing.T) {
	inner := NewMap(KV("z", 1), KV("a", 2))
	m := NewMap(KV("graphName", "g"), KV("config", inner))

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"graphName":"g","config":{"z":1,"a":2}}`, string(raw))

	plain := m.ToMap()
	assert.Equal(t, map[string]any{"z": 1, "a": 2}, plain["config"])

	m.Delete("graphName")
	assert.Equal(t, []string{"config"}, m.Keys())

	m.Set("config", "replaced")
	assert.Equal(t, 1, m.Len())
}
