package messaging

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisher_WritesEventLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(log.New(&buf, "", 0))

	err := p.Publish(context.Background(), "abc", "BillIssued", []byte(`{"grandTotal":"250"}`))
	require.NoError(t, err)
	assert.Equal(t, "Event BillIssued id=abc payload={\"grandTotal\":\"250\"}\n", buf.String())
}

func TestRabbitMqPublisher_DialFailureIsReturned(t *testing.T) {
	p := NewRabbitMqPublisher(RabbitMqOptions{URI: "amqp://nobody@127.0.0.1:1/", ExchangeName: "billing.events"})
	defer p.Close()

	err := p.Publish(context.Background(), "id", "SaleRecorded", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial rabbitmq")
}
