package characterstoragemysql

import (
	"strings"
	"testing"

	"github.com/bmizerany/assert"
)

func TestRSIColumns(t *testing.T) {
	assert.Equal(t, 22, len(rsiColumns))
	cols := rsiColumnList()
	assert.T(t, strings.HasPrefix(cols, "`sex`, `body`, `hat`"))
	assert.T(t, strings.HasSuffix(cols, "`facialdetailcolor`, `leggings`"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(3))
	assert.Equal(t, 21, strings.Count(placeholders(21), "?"))
	assert.Equal(t, 20, strings.Count(characterColumns, "`")/2)
}
