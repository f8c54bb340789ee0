package aws

import (
	"context"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSPublisher publishes a JSON message to a topic.
type SNSPublisher interface {
	Publish(ctx context.Context, topicArn string, message []byte) error
}

// SNSClient tags every message with a "source" attribute so subscribers
// can filter on the publishing service.
type SNSClient struct {
	client *sns.Client
	source string
}

func NewSNSClient(cfg sdkaws.Config, source string) *SNSClient {
	return &SNSClient{client: sns.NewFromConfig(cfg), source: source}
}

func (s *SNSClient) Publish(ctx context.Context, topicArn string, message []byte) error {
	if topicArn == "" {
		return errors.New("sns: empty topic arn")
	}

	in := &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(message)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"content_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String("application/json")},
		},
	}
	if s.source != "" {
		in.MessageAttributes["source"] = types.MessageAttributeValue{
			DataType:    sdkaws.String("String"),
			StringValue: sdkaws.String(s.source),
		}
	}

	if _, err := s.client.Publish(ctx, in); err != nil {
		return fmt.Errorf("sns publish to %s: %w", topicArn, err)
	}
	return nil
}
