package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "try this fix")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsTemplateNotFound(nil))
	assert.False(t, IsIndexNotFound(nil))
}

func TestNewTemplateNotFoundError(t *testing.T) {
	err := NewTemplateNotFoundError("no %s template in %s", "vue2", "bin")

	assert.True(t, IsTemplateNotFound(err))
	assert.False(t, IsIndexNotFound(err))
	assert.Contains(t, err.Error(), "no vue2 template in bin")
}

func TestNewIndexNotFoundError(t *testing.T) {
	err := Wrap(NewIndexNotFoundError("missing %s", "src/components/index.ts"), "register Foo")

	assert.True(t, IsIndexNotFound(err))
	assert.Contains(t, err.Error(), "register Foo")
	assert.Contains(t, err.Error(), "src/components/index.ts")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrTemplateNotFound,
		ErrIncompatibleTemplate,
		ErrIndexNotFound,
		ErrNoComponents,
		ErrFrontendNotFound,
		ErrInvalidConfig,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func ExampleWrap() {
	err := Wrap(ErrTemplateNotFound, "vue2-component")
	fmt.Println(err)
	// Output: vue2-component: template not found
}
