package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransforms(t *testing.T) {
	tests := []struct {
		transform string
		in        string
		want      string
	}{
		{"kebab", "MyWidget", "my-widget"},
		{"snake", "MyWidget", "my_widget"},
		{"camel", "my-widget", "MyWidget"},
		{"lower_camel", "my_widget", "myWidget"},
		{"screaming_snake", "myWidget", "MY_WIDGET"},
		{"lower", "Widget", "widget"},
		{"upper", "Widget", "WIDGET"},
		{"title", "hello world", "Hello World"},
		{"trim", "  x  ", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.transform, func(t *testing.T) {
			fn, ok := LookupTransform(tt.transform)
			require.True(t, ok)
			assert.Equal(t, tt.want, fn(tt.in))
		})
	}
}

func TestTransformNamesSorted(t *testing.T) {
	names := TransformNames()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "kebab")
}

func TestDerive(t *testing.T) {
	r, err := Derive("cls", "component", "snake", "upper")
	require.NoError(t, err)
	assert.Equal(t, []string{"component"}, r.Inputs)

	v, err := r.Derive("UserCard")
	require.NoError(t, err)
	assert.Equal(t, "USER_CARD", v)
}

func TestDerive_Copy(t *testing.T) {
	r, err := Derive("alias", "name")
	require.NoError(t, err)
	v, _ := r.Derive("Same")
	assert.Equal(t, "Same", v)
}

func TestDerive_UnknownTransform(t *testing.T) {
	_, err := Derive("cls", "component", "reverse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transform "reverse"`)
}

func TestPattern(t *testing.T) {
	r, err := Pattern("path", "src/{{dir}}/{{file}}.jsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir", "file"}, r.Inputs)

	v, err := r.Derive("components", "{{x}}")
	require.NoError(t, err)
	assert.Equal(t, "src/components/{{x}}.jsx", v)
}

func TestPattern_Errors(t *testing.T) {
	_, err := Pattern("p", "no refs")
	assert.Error(t, err)

	_, err = Pattern("p", "{{unclosed")
	assert.Error(t, err)

	_, err = Pattern("p", "{{x}}", "nope")
	assert.Error(t, err)
}
