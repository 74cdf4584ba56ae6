package m_outbox

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// InsertMutation writes values positionally, so Columns must follow the
// field order of Row.
func TestColumnsFollowRowFields(t *testing.T) {
	rt := reflect.TypeOf(Row{})
	require.Equal(t, rt.NumField(), len(Columns))
	for i := 0; i < rt.NumField(); i++ {
		assert.Equal(t, Columns[i], rt.Field(i).Tag.Get("spanner"), "field %s", rt.Field(i).Name)
	}
}

func TestAggregateIDIsInt64(t *testing.T) {
	f, ok := reflect.TypeOf(Row{}).FieldByName("AggregateID")
	require.True(t, ok)
	assert.Equal(t, reflect.Int64, f.Type.Kind())
}
