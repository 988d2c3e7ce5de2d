package fixture_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/seedwork/pkg/adapters/fixture"
)

func TestJSONSerializer_Parse(t *testing.T) {
	t.Run("single object", func(t *testing.T) {
		recs, err := fixture.NewJSONSerializer(false).Parse(strings.NewReader(`{"name":"Movie","count":3}`))
		require.NoError(t, err)
		assert.Equal(t, []fixture.Record{{"name": "Movie", "count": float64(3)}}, recs)
	})

	t.Run("list", func(t *testing.T) {
		recs, err := fixture.NewJSONSerializer(false).Parse(strings.NewReader(`[{"name":"a"},{"name":"b"}]`))
		require.NoError(t, err)
		assert.Len(t, recs, 2)
		assert.Equal(t, "b", recs[1]["name"])
	})

	t.Run("strict keeps numbers exact", func(t *testing.T) {
		recs, err := fixture.NewJSONSerializer(true).Parse(strings.NewReader(`{"big":9007199254740993}`))
		require.NoError(t, err)
		assert.Equal(t, json.Number("9007199254740993"), recs[0]["big"])
	})

	t.Run("rejects scalars", func(t *testing.T) {
		_, err := fixture.NewJSONSerializer(false).Parse(strings.NewReader(`[1, 2]`))
		assert.Error(t, err)

		_, err = fixture.NewJSONSerializer(false).Parse(strings.NewReader(`"text"`))
		assert.Error(t, err)

		_, err = fixture.NewJSONSerializer(false).Parse(strings.NewReader(`{broken`))
		assert.Error(t, err)
	})
}

func TestYAMLSerializer_Parse(t *testing.T) {
	input := `
- name: Movie
  is_active: false
  rank: 2
- name: Series
`
	recs, err := fixture.NewYAMLSerializer(false).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, false, recs[0]["is_active"])
	assert.Equal(t, 2, recs[0]["rank"])

	recs, err = fixture.NewYAMLSerializer(true).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), recs[0]["rank"])
}

func TestCSVSerializer_Parse(t *testing.T) {
	input := "name, is_active ,tags,description\nMovie,true,\"[\"\"a\"\",\"\"b\"\"]\",\nSeries,false,[],Long\n"

	recs, err := fixture.NewCSVSerializer(false).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, fixture.Record{
		"name":        "Movie",
		"is_active":   true,
		"tags":        []any{"a", "b"},
		"description": nil,
	}, recs[0])
	assert.Equal(t, false, recs[1]["is_active"])

	strict, err := fixture.NewCSVSerializer(true).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "true", strict[0]["is_active"])
	assert.Equal(t, "", strict[0]["description"])
}

func TestCSVSerializer_RoundTrip(t *testing.T) {
	s := fixture.NewCSVSerializer(false)
	data, err := s.Serialize([]fixture.Record{
		{"name": "Movie", "is_active": true},
		{"name": "Series", "tags": []any{"x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "is_active,name,tags\ntrue,Movie,\n,Series,\"[\"\"x\"\"]\"\n", string(data))

	back, err := s.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "Series", back[1]["name"])
	assert.Equal(t, []any{"x"}, back[1]["tags"])
	assert.Nil(t, back[1]["is_active"])
}

func TestMarshalCSVValue(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	text := "x"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"nil pointer", (*string)(nil), ""},
		{"pointer", &text, "x"},
		{"bool", false, "false"},
		{"int", 7, "7"},
		{"time", when, "2024-01-02T03:04:05Z"},
		{"time pointer", &when, "2024-01-02T03:04:05Z"},
		{"list", []any{"a", 1}, `["a",1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixture.MarshalCSVValue(tt.in))
		})
	}
}
