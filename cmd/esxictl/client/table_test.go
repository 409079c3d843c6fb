package client

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRenderStringTable(t *testing.T) {
	out := RenderStringTable([]string{"Name", "Path"}, [][]string{{"vcsa", "/vmfs/volumes/ds1/vcsa/vcsa.vmx"}})
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "/vmfs/volumes/ds1/vcsa/vcsa.vmx")
}

func TestTruncateCol(t *testing.T) {
	headers := []string{"Name", "Path"}
	data := [][]string{
		{"vcsa", "/vmfs/volumes/datastore1/vcsa/vcsa.vmx"},
		{"web", "/vmfs/volumes/datastore1/web/web.vmx"},
	}

	full := strings.Split(RenderStringTable(headers, data), "\n")[0]
	width := utf8.RuneCountInString(full) - 10

	res := TruncateCol(width, 1, headers, data)
	line := strings.Split(RenderStringTable(headers, res), "\n")[0]
	assert.LessOrEqual(t, utf8.RuneCountInString(line), width)
	assert.True(t, strings.HasSuffix(res[0][1], "…"))
}

func TestTruncateColNoLimit(t *testing.T) {
	data := [][]string{{"vcsa", "/vmfs/volumes/datastore1/vcsa/vcsa.vmx"}}
	res := TruncateCol(0, 1, []string{"Name", "Path"}, data)
	assert.Equal(t, "/vmfs/volumes/datastore1/vcsa/vcsa.vmx", res[0][1])
}
