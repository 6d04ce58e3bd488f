package aws

import (
	"context"
	"log"
	"strings"
	"time"
	"triphub/src/lib"
	"triphub/src/types"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type sqsReceiver interface {
	lib.SQSMessageDeleter
	ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
}

type SQSConsumer struct {
	Name    string
	handler types.Handler
	backoff time.Duration
}

func NewSQSConsumer(queue string, handler types.Handler) *SQSConsumer {
	return &SQSConsumer{
		Name:    queue,
		handler: handler,
		backoff: 5 * time.Second,
	}
}

// Listen long-polls the queue until ctx is done. Each message is handed to
// the handler and deleted afterwards.
func (s *SQSConsumer) Listen(ctx context.Context) {
	go func() {
		client := lib.AWSGetSQSClient()
		if client == nil {
			return
		}
		qurl, err := lib.SQSGetQueueURL(ctx, client, s.Name)
		if err != nil {
			log.Printf("%s\n", err.Error())
			return
		}
		log.Printf("%s: Listening for messages...", s.Name)
		s.poll(ctx, client, qurl)
	}()
}

// poll keeps receiving until ctx is done. Receive errors are logged and
// retried after the backoff.
func (s *SQSConsumer) poll(ctx context.Context, client sqsReceiver, qurl *string) {
	for ctx.Err() == nil {
		output, err := client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            qurl,
			WaitTimeSeconds:     20,
			MaxNumberOfMessages: 10,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[SQS] %s: error receiving messages, retrying in %s: %s\n", s.Name, s.backoff, err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.backoff):
			}
			continue
		}
		for _, m := range output.Messages {
			s.handler(strings.Clone(*m.Body))
			lib.SQSDeleteMessage(ctx, client, qurl, &m)
		}
	}
}
