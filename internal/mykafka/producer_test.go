package mykafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := newMessage(ProductEvents, "7", map[string]any{
		"type":      "product_created",
		"productID": 3,
	})
	require.NoError(t, err)

	assert.Equal(t, ProductEvents, msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)
	assert.False(t, msg.Time.IsZero())

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "product_created", body["type"])
	assert.EqualValues(t, 3, body["productID"])
}

func TestNewMessage_Unmarshalable(t *testing.T) {
	_, err := newMessage(UserEvents, "1", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.PublishEvent(context.Background(), UserEvents, "1", nil))
}
