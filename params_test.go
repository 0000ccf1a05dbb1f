package toolgate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckParams(t *testing.T) {
	tests := []struct {
		name   string
		params []Param
		ok     bool
	}{
		{"valid", []Param{{Name: "a", Type: TypeNumber}, {Name: "b", Type: TypeString}}, true},
		{"empty list", nil, true},
		{"empty name", []Param{{Name: "", Type: TypeNumber}}, false},
		{"duplicate", []Param{{Name: "a", Type: TypeNumber}, {Name: "a", Type: TypeString}}, false},
		{"bad type tag", []Param{{Name: "a", Type: ParamType("decimal")}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkParams(tt.params)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSchemaFromParams(t *testing.T) {
	schema := schemaFromParams([]Param{
		{Name: "location", Type: TypeString, Required: true, Description: "City name"},
		{Name: "units", Type: TypeString, Default: "celsius", Enum: []any{"celsius", "kelvin"}},
	})
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Equal(t, []string{"location"}, schema["required"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	location, ok := props["location"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", location["type"])
	assert.Equal(t, "City name", location["description"])
	units, ok := props["units"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "celsius", units["default"])
	assert.Equal(t, []any{"celsius", "kelvin"}, units["enum"])
}

type reflectedArgs struct {
	Location string  `json:"location" description:"City name"`
	Units    string  `json:"units,omitempty" jsonschema:"enum=celsius,enum=kelvin,default=celsius"`
	Days     int     `json:"days,omitempty" jsonschema:"default=3"`
	Wind     float64 `json:"wind,omitempty"`
	Verbose  bool    `json:"verbose,omitempty"`
}

func TestParamsOf(t *testing.T) {
	params, err := ParamsOf[reflectedArgs]()
	require.NoError(t, err)
	require.Len(t, params, 5)

	byName := make(map[string]Param, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}

	location := byName["location"]
	assert.Equal(t, TypeString, location.Type)
	assert.True(t, location.Required)
	assert.Equal(t, "City name", location.Description)

	units := byName["units"]
	assert.False(t, units.Required)
	assert.Equal(t, "celsius", units.Default)
	assert.Contains(t, units.Enum, any("kelvin"))

	days := byName["days"]
	assert.Equal(t, TypeInteger, days.Type)
	if f, ok := toFloat(days.Default); assert.True(t, ok, "integer default should be numeric") {
		assert.Equal(t, 3.0, f)
	}

	assert.Equal(t, TypeNumber, byName["wind"].Type)
	assert.Equal(t, TypeBoolean, byName["verbose"].Type)
}

func TestParamsOf_FieldOrderPreserved(t *testing.T) {
	params, err := ParamsOf[reflectedArgs]()
	require.NoError(t, err)
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"location", "units", "days", "wind", "verbose"}, names)
}

func TestNewTypedTool(t *testing.T) {
	type rangeArgs struct {
		Low  int `json:"low"`
		High int `json:"high"`
	}
	type span struct {
		Width int `json:"width"`
	}
	tool, err := NewTypedTool("span", "Width of a range", func(_ context.Context, a rangeArgs) (span, error) {
		return span{Width: a.High - a.Low}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "span", tool.Name())

	validated, err := tool.Validate(Args{"low": 3.0, "high": 10.0})
	require.NoError(t, err)
	data, err := tool.Call(context.Background(), validated)
	require.NoError(t, err)
	assert.Equal(t, span{Width: 7}, data)

	_, err = tool.Validate(Args{"low": 3.0})
	assert.Equal(t, KindMissingParameter, KindOf(err))
	_, err = tool.Validate(Args{"low": 3.0, "high": 10.0, "step": 1.0})
	assert.Equal(t, KindUnknownParameter, KindOf(err))
}

func TestNewTool_SpecErrors(t *testing.T) {
	h := func(_ context.Context, _ Args) (any, error) { return nil, nil }
	_, err := NewTool("", "desc", nil, h)
	assert.Error(t, err)
	_, err = NewTool("x", "desc", nil, nil)
	assert.Error(t, err)
	_, err = NewTool("x", "desc", []Param{{Name: "a", Type: "mystery"}}, h)
	assert.Error(t, err)
}

func TestTool_SchemaCopy(t *testing.T) {
	h := func(_ context.Context, _ Args) (any, error) { return nil, nil }
	tool, err := NewTool("x", "desc", []Param{{Name: "a", Type: TypeString, Required: true}}, h)
	require.NoError(t, err)
	schema := tool.Schema()
	schema["type"] = "tampered"
	assert.Equal(t, "object", tool.Schema()["type"])
}
