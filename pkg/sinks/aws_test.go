package sinks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/climapyg/climapyg-dashboard/pkg/panels"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func sampleEvent() Event {
	return NewEvent("snapshot", panels.Snapshot{
		Weather:  panels.WeatherView{City: "Asunción"},
		Currency: panels.CurrencyView{Code: "USD"},
		Bitcoin:  panels.BitcoinView{Error: "Error 503: down"},
	})
}

func TestSQSSinkPublish(t *testing.T) {
	client := &fakeSQSClient{}
	s := &sqsSink{id: "q", queueURL: "https://sqs.local/q", client: client, log: noopLogger{}}

	if err := s.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.local/q" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["currency"]
	if !ok || aws.ToString(attr.StringValue) != "USD" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("currency attribute missing or wrong: %#v", attr)
	}
	if got := aws.ToString(client.input.MessageAttributes["failed"].StringValue); got != "true" {
		t.Fatalf("failed attribute = %s", got)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"source":"snapshot"`) {
		t.Fatalf("body missing source: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSSinkPublishError(t *testing.T) {
	s := &sqsSink{id: "q", queueURL: "u", client: &fakeSQSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := s.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestSNSSinkPublish(t *testing.T) {
	client := &fakeSNSClient{}
	s := &snsSink{id: "t", topicARN: "arn:aws:sns:::topic", client: client, log: noopLogger{}}

	if err := s.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	if attr := client.input.MessageAttributes["city"]; aws.ToString(attr.StringValue) != "Asunción" {
		t.Fatalf("city attribute wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"code":"USD"`) {
		t.Fatalf("message missing currency: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSSinkPublishError(t *testing.T) {
	s := &snsSink{id: "t", topicARN: "arn", client: &fakeSNSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := s.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}
