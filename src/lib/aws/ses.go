package aws

import (
	"context"
	"fmt"
	"log"
	"triphub/src/lib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

func SESInput(input *lib.SendMailInput) *ses.SendEmailInput {
	body := &types.Body{}
	content := &types.Content{Data: aws.String(input.Body), Charset: aws.String("UTF-8")}
	if input.Html {
		body.Html = content
	} else {
		body.Text = content
	}
	source := input.From
	if input.FromName != "" {
		source = fmt.Sprintf("%s <%s>", input.FromName, input.From)
	}
	out := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: input.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(input.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if input.ReplyTo != "" {
		out.ReplyToAddresses = []string{input.ReplyTo}
	}
	return out
}

func SESSendMessage(ctx context.Context, input *lib.SendMailInput) error {
	c := lib.AWSGetSESClient()
	if c == nil {
		return fmt.Errorf("ses client unavailable")
	}
	out, err := c.SendEmail(ctx, SESInput(input))
	if err != nil {
		log.Printf("Error sending email: %s\n", err.Error())
		return err
	}
	log.Printf("Sent email with id: %s\n", aws.ToString(out.MessageId))
	return nil
}
