package client

import (
	"testing"

	"github.com/OnitiFR/esxictl/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() common.APIVMListEntries {
	on := true
	off := false
	return common.APIVMListEntries{
		{ID: 1, Name: "vcsa", Datastore: "datastore1", StartOrder: 1, PoweredOn: &on},
		{ID: 3, Name: "web-old", Datastore: "datastore2", PoweredOn: &off},
		{ID: 5, Name: "web-new", Datastore: "datastore1", StartOrder: 2, PoweredOn: &on},
	}
}

func names(entries common.APIVMListEntries) []string {
	res := []string{}
	for _, entry := range entries {
		res = append(res, entry.Name)
	}
	return res
}

func TestSearchVMs(t *testing.T) {
	res, err := SearchVMs(testEntries(), `like("web*") && autostart`)
	require.NoError(t, err)
	assert.Equal(t, []string{"web-new"}, names(res))

	res, err = SearchVMs(testEntries(), `on_datastore("DATASTORE1") && start_order < 2`)
	require.NoError(t, err)
	assert.Equal(t, []string{"vcsa"}, names(res))

	res, err = SearchVMs(testEntries(), `!powered_on || strlen(name) == 4`)
	require.NoError(t, err)
	assert.Equal(t, []string{"vcsa", "web-old"}, names(res))

	res, err = SearchVMs(testEntries(), `id > 100`)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchVMsErrors(t *testing.T) {
	_, err := SearchVMs(testEntries(), "  ")
	assert.Error(t, err)

	_, err = SearchVMs(testEntries(), "id + 1")
	assert.Error(t, err)

	_, err = SearchVMs(testEntries(), "like(")
	assert.Error(t, err)
}

func TestLikeVMs(t *testing.T) {
	assert.Equal(t, []string{"web-old", "web-new"}, names(LikeVMs(testEntries(), "web-*")))
	assert.Equal(t, []string{"vcsa", "web-old", "web-new"}, names(LikeVMs(testEntries(), "*")))
	assert.Empty(t, LikeVMs(testEntries(), "db*"))
}
