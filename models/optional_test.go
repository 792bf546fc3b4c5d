package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentFromNull(t *testing.T) {
	var patch struct {
		ParentID Optional[uint]   `json:"parentId"`
		Name     Optional[string] `json:"name"`
		Notes    Optional[string] `json:"notes"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"parentId":null,"name":"Steel"}`), &patch))

	require.True(t, patch.ParentID.Set)
	require.True(t, patch.ParentID.Null)
	require.False(t, patch.ParentID.Present())

	require.Equal(t, Some("Steel"), patch.Name)
	require.True(t, patch.Name.Present())

	require.False(t, patch.Notes.Set)

	out, err := json.Marshal(patch)
	require.NoError(t, err)
	require.JSONEq(t, `{"parentId":null,"name":"Steel","notes":null}`, string(out))
}

func TestLogisticsStatusValid(t *testing.T) {
	require.True(t, LogisticsInTransit.Valid())
	require.False(t, LogisticsStatus("LOST").Valid())
}
