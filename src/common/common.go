package common

import (
	"context"
	"log"
	"triphub/src/lib"
	awslib "triphub/src/lib/aws"
	"triphub/src/lib/mailer"
	"triphub/src/types"
)

const PaymentsSettledQueue = "PaymentsSettled"

// Consumers starts the queue consumers for env. Locally the messages travel
// over Kafka, everywhere else over SQS.
func Consumers(ctx context.Context, env types.Environment) {
	handler := &PaymentSettledHandler{
		Mailer: mailer.ForEnv(env),
		Push:   lib.PushToVendor,
	}
	queue := lib.WithSuffix(PaymentsSettledQueue)
	if env == types.Local {
		if err := lib.KafkaConsume("triphub-api", queue, handler.Handle, ctx.Done()); err != nil {
			log.Printf("Could not start kafka consumer for %s: %s\n", queue, err.Error())
		}
		return
	}
	awslib.NewSQSConsumer(queue, handler.Handle).Listen(ctx)
}
