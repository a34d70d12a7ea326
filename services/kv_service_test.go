package services

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVItem_AttributeRoundTrip(t *testing.T) {
	t.Parallel()

	item := kvItem{
		Key:       "verification_history_u1",
		Value:     `{"v":1,"data":[]}`,
		UpdatedAt: "2026-08-31T12:00:00Z",
	}

	marshaled, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)

	// the table's hash key attribute must come out as a string named "k"
	keyAttr, ok := marshaled["k"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, item.Key, keyAttr.Value)

	var decoded kvItem
	require.NoError(t, attributevalue.UnmarshalMap(marshaled, &decoded))
	assert.Equal(t, item, decoded)
}

func TestEnvelope_RoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := encodeEnvelope([]string{"a", "b"})
	require.NoError(t, err)

	var out []string
	require.NoError(t, decodeEnvelope(raw, &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestEnvelope_RejectsCorruptValues(t *testing.T) {
	t.Parallel()

	var out []string

	// pre-envelope plain strings and truncated JSON both fail validation
	assert.Error(t, decodeEnvelope("just a string", &out))
	assert.Error(t, decodeEnvelope(`{"v":1,"data":[`, &out))

	// a future schema version is not silently misread
	assert.Error(t, decodeEnvelope(`{"v":2,"data":[]}`, &out))

	// payload shape mismatch surfaces instead of zeroing the target
	assert.Error(t, decodeEnvelope(`{"v":1,"data":{"x":1}}`, &out))
}
