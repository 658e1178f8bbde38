package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerPhoto_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ServerPhoto
	}{
		{
			name: "well formed",
			in:   `{"fileid":10,"auid":"a1","buid":"b1","dayid":19001}`,
			want: ServerPhoto{FileID: 10, AUID: "a1", BUID: "b1", DayID: 19001},
		},
		{
			name: "numeric fields of other types",
			in:   `{"fileid":"abc","auid":"a1","dayid":{"x":1}}`,
			want: ServerPhoto{AUID: "a1"},
		},
		{
			name: "quoted numbers and nulls",
			in:   `{"fileid":"12","auid":null,"buid":"b2","dayid":null}`,
			want: ServerPhoto{FileID: 12, BUID: "b2"},
		},
		{
			name: "non-string ids",
			in:   `{"fileid":3,"auid":42,"buid":"b3"}`,
			want: ServerPhoto{FileID: 3, BUID: "b3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ServerPhoto
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServerPhoto_ListingSurvivesOddEntry(t *testing.T) {
	var photos []ServerPhoto
	err := json.Unmarshal([]byte(`[{"fileid":1,"auid":"a1"},{"fileid":true,"buid":"b2","dayid":"x"}]`), &photos)

	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "a1", photos[0].AUID)
	assert.Equal(t, "b2", photos[1].BUID)
}

func TestServerPhoto_NotAnObject(t *testing.T) {
	var p ServerPhoto
	assert.Error(t, json.Unmarshal([]byte(`"a1"`), &p))
}
