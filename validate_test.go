package toolgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherParams() []Param {
	return []Param{
		{Name: "location", Type: TypeString, Required: true},
		{Name: "units", Type: TypeString, Default: "celsius", Enum: []any{"celsius", "fahrenheit", "kelvin"}},
		{Name: "days", Type: TypeInteger, Default: int64(3)},
	}
}

func TestValidateArgs_OK(t *testing.T) {
	out, err := ValidateArgs(weatherParams(), Args{"location": "Oslo", "units": "kelvin", "days": 5.0})
	require.NoError(t, err)
	assert.Equal(t, "Oslo", out["location"])
	assert.Equal(t, "kelvin", out["units"])
	assert.Equal(t, 5.0, out["days"])
}

func TestValidateArgs_DefaultsSubstituted(t *testing.T) {
	out, err := ValidateArgs(weatherParams(), Args{"location": "Oslo"})
	require.NoError(t, err)
	assert.Equal(t, "celsius", out["units"])
	assert.Equal(t, int64(3), out["days"])
}

func TestValidateArgs_Failures(t *testing.T) {
	tests := []struct {
		name string
		args Args
		kind Kind
	}{
		{"missing required", Args{"units": "celsius"}, KindMissingParameter},
		{"wrong type", Args{"location": 42}, KindTypeMismatch},
		{"enum violation", Args{"location": "Oslo", "units": "rankine"}, KindTypeMismatch},
		{"non-integral integer", Args{"location": "Oslo", "days": 2.5}, KindTypeMismatch},
		{"unknown parameter", Args{"location": "Oslo", "zip": "1010"}, KindUnknownParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ValidateArgs(weatherParams(), tt.args)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestValidateArgs_TypeTags(t *testing.T) {
	params := []Param{
		{Name: "s", Type: TypeString},
		{Name: "n", Type: TypeNumber},
		{Name: "i", Type: TypeInteger},
		{Name: "b", Type: TypeBoolean},
		{Name: "a", Type: TypeArray},
		{Name: "o", Type: TypeObject},
	}
	tests := []struct {
		name string
		args Args
		ok   bool
	}{
		{"json shapes", Args{"s": "x", "n": 1.5, "i": 2.0, "b": true, "a": []any{1.0}, "o": map[string]any{"k": "v"}}, true},
		{"go native ints", Args{"n": 3, "i": int64(7)}, true},
		{"typed slice", Args{"a": []string{"x", "y"}}, true},
		{"string for number", Args{"n": "1.5"}, false},
		{"number for bool", Args{"b": 1.0}, false},
		{"nil array", Args{"a": nil}, false},
		{"scalar for object", Args{"o": "not-a-map"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateArgs(params, tt.args)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, KindTypeMismatch, KindOf(err))
			}
		})
	}
}

func TestValidateArgs_Pure(t *testing.T) {
	params := weatherParams()
	args := Args{"location": "Oslo"}
	out, err := ValidateArgs(params, args)
	require.NoError(t, err)
	// defaults land in the returned map, never in the caller's
	assert.NotContains(t, args, "units")
	out["location"] = "mutated"
	assert.Equal(t, "Oslo", args["location"])
}

func TestEnumContains_NumericNormalization(t *testing.T) {
	enum := []any{1, 2, 3}
	assert.True(t, enumContains(enum, 2.0))
	assert.True(t, enumContains(enum, int64(3)))
	assert.False(t, enumContains(enum, 4.0))
}
