package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
)

type fakeQueue struct {
	receives []error
	calls    int
	deleted  []string
	cancel   context.CancelFunc
}

func (f *fakeQueue) ReceiveMessage(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.calls++
	if f.calls <= len(f.receives) {
		return nil, f.receives[f.calls-1]
	}
	f.cancel()
	return &sqs.ReceiveMessageOutput{Messages: []sqsTypes.Message{
		{Body: aws.String(`{"bookingId":7}`), ReceiptHandle: aws.String("rh-1"), MessageId: aws.String("m-1")},
	}}, nil
}

func (f *fakeQueue) DeleteMessage(_ context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSQSConsumerSurvivesReceiveErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue := &fakeQueue{receives: []error{errors.New("throttled"), errors.New("connection reset")}, cancel: cancel}
	var got []string
	c := NewSQSConsumer("payments", func(payload string) { got = append(got, payload) })
	c.backoff = time.Millisecond

	c.poll(ctx, queue, aws.String("https://sqs.example/payments"))

	assert.Equal(t, 3, queue.calls)
	assert.Equal(t, []string{`{"bookingId":7}`}, got)
	assert.Equal(t, []string{"rh-1"}, queue.deleted)
}

func TestSQSConsumerStopsWhenCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	queue := &fakeQueue{receives: []error{errors.New("throttled")}, cancel: cancel}
	c := NewSQSConsumer("payments", func(string) { t.Fatal("no message expected") })
	c.backoff = time.Hour
	time.AfterFunc(10*time.Millisecond, cancel)

	done := make(chan struct{})
	go func() {
		c.poll(ctx, queue, aws.String("https://sqs.example/payments"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
	assert.Equal(t, 1, queue.calls)
}
