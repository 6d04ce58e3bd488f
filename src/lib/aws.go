package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

var (
	awsOnce sync.Once
	awsCfg  *aws.Config
	awsErr  error
)

// AWSConfig loads the shared SDK config once. When AWS_IAM_ROLE_ARN is set
// the credentials come from assuming that role.
func AWSConfig() (*aws.Config, error) {
	awsOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Printf("Error loading default config: %s\n", err.Error())
			awsErr = err
			return
		}
		if iamRole := os.Getenv("AWS_IAM_ROLE_ARN"); iamRole != "" {
			stsClient := sts.NewFromConfig(cfg)
			cfg.Credentials = aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(stsClient, iamRole, func(o *stscreds.AssumeRoleOptions) {
				o.RoleSessionName = "triphub-api"
			}))
		}
		awsCfg = &cfg
	})
	return awsCfg, awsErr
}

func AWSGetS3Client() *s3.Client {
	cfg, err := AWSConfig()
	if err != nil {
		log.Printf("Failed to initialize S3: %s\n", err.Error())
		return nil
	}
	return s3.NewFromConfig(*cfg)
}

func AWSGetSQSClient() *sqs.Client {
	cfg, err := AWSConfig()
	if err != nil {
		log.Printf("Failed to initialize SQS client: %s\n", err.Error())
		return nil
	}
	return sqs.NewFromConfig(*cfg)
}

func AWSGetSNSClient() *sns.Client {
	cfg, err := AWSConfig()
	if err != nil {
		log.Printf("Failed to initialize SNS client: %s\n", err.Error())
		return nil
	}
	return sns.NewFromConfig(*cfg)
}

func AWSGetSESClient() *ses.Client {
	cfg, err := AWSConfig()
	if err != nil {
		log.Printf("Failed to initialize SES client: %s\n", err.Error())
		return nil
	}
	return ses.NewFromConfig(*cfg)
}

// GetTopicArn builds the ARN of an SNS topic in the configured account.
func GetTopicArn(topic string) string {
	return fmt.Sprintf("arn:aws:sns:%s:%s:%s", os.Getenv("AWS_REGION"), os.Getenv("AWS_ACCOUNT_ID"), topic)
}

func SQSGetQueueURL(ctx context.Context, client *sqs.Client, queue string) (*string, error) {
	out, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve queue URL for %s: %w", queue, err)
	}
	return out.QueueUrl, nil
}

func SQSProduceMessage(ctx context.Context, queue string, body string) error {
	client := AWSGetSQSClient()
	if client == nil {
		return fmt.Errorf("sqs client unavailable")
	}
	qurl, err := SQSGetQueueURL(ctx, client, queue)
	if err != nil {
		return err
	}
	out, err := client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    qurl,
		MessageBody: aws.String(body),
	})
	if err != nil {
		return err
	}
	log.Printf("[SQS] sent message %s to %s\n", aws.ToString(out.MessageId), queue)
	return nil
}

type SQSMessageDeleter interface {
	DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func SQSDeleteMessage(ctx context.Context, c SQSMessageDeleter, qurl *string, msg *sqsTypes.Message) {
	_, err := c.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      qurl,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Printf("Error deleting message from queue: %s\n", err.Error())
		return
	}
	log.Printf("Deleted message from queue: %s\n", aws.ToString(msg.MessageId))
}

// WithSuffix appends the environment to a queue or topic name so local,
// test and production never share one.
func WithSuffix(name string) string {
	env := os.Getenv("API_ENV")
	if env == "" || env == "production" {
		return name
	}
	return fmt.Sprintf("%s_%s", name, env)
}
