package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogCapture(t *testing.T) {
	w := NewLogCapture(3)
	assert.Equal(t, "", w.GetLastLine())
	assert.Empty(t, w.Lines(5))

	for i := 1; i <= 2; i++ {
		fmt.Fprintf(w, "line %d\n", i)
	}
	assert.Equal(t, []string{"line 1", "line 2"}, w.Lines(0))
	assert.Equal(t, "line 2", w.GetLastLine())

	for i := 3; i <= 5; i++ {
		fmt.Fprintf(w, "line %d\n", i)
	}
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, w.Lines(10))
	assert.Equal(t, []string{"line 4", "line 5"}, w.Lines(2))
	assert.Equal(t, "line 5", w.GetLastLine())
}
