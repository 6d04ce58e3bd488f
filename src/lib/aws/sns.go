package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
	"triphub/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const VendorFlaggedTopic = "VendorFlagged"

// SNSPublisher fans moderation events out through an SNS topic.
type SNSPublisher struct {
	Topic string
	inner *sns.Client
}

func NewSNSPublisher(topic string) *SNSPublisher {
	return &SNSPublisher{
		Topic: lib.WithSuffix(topic),
		inner: lib.AWSGetSNSClient(),
	}
}

func (p *SNSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if p.inner == nil {
		return fmt.Errorf("sns client unavailable")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	out, err := p.inner.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(lib.GetTopicArn(p.Topic)),
		Subject:  aws.String(subject),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		log.Printf("Error publishing to topic [%s]: %s\n", p.Topic, err.Error())
		return err
	}
	log.Printf("[SNS] %s published %s\n", p.Topic, aws.ToString(out.MessageId))
	return nil
}

func (p *SNSPublisher) VendorFlagged(ctx context.Context, email string) error {
	return p.Publish(ctx, "vendor.flagged", map[string]any{
		"event":     "vendor.flagged",
		"email":     email,
		"flaggedAt": time.Now().UTC(),
	})
}
