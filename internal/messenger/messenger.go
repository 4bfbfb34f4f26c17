package messenger

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/mintbay/nft-marketplace/internal/config"
	"go.uber.org/zap"
	"strconv"
	"strings"
	"sync"
)

type MessageService interface {
	SendMessage(item Item, body []byte) error
	PollMessages(item Item, messages chan<- *sqs.Message)
	DeleteMessage(item Item, msg *sqs.Message) error
	GetQueueSize(item Item) (*int, error)
}

type Messenger struct {
	client *sqs.SQS

	mu        sync.Mutex
	queueUrls map[Item]string
}

type Item string

var (
	MetadataRefresh Item = "metadata.refresh"
	ListingSettled  Item = "listing.settled"
)

// Listing is the metadata refresh message body.
type Listing struct {
	ListingId     uint64 `json:"listingId"`
	AssetContract string `json:"assetContract"`
	TokenId       uint64 `json:"tokenId"`
}

func (i Item) queue() string {
	name := strings.ReplaceAll(string(i), ".", "-")
	return fmt.Sprintf("%s-%s-%s", config.Get().Aws.QueuePrefix, config.Get().Network, name)
}

func NewMessenger(client *sqs.SQS) MessageService {
	return &Messenger{client: client, queueUrls: make(map[Item]string)}
}

func (m *Messenger) SendMessage(item Item, body []byte) error {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.client.SendMessage(&sqs.SendMessageInput{
		QueueUrl:    aws.String(queueUrl),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to send message")
		return err
	}

	zap.L().With(zap.String("queue", item.queue())).Debug("[Queue] Published message")

	return nil
}

func (m *Messenger) PollMessages(item Item, messages chan<- *sqs.Message) {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to resolve queue")
		return
	}

	for {
		output, err := m.client.ReceiveMessage(&sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueUrl),
			MaxNumberOfMessages: aws.Int64(10),
			WaitTimeSeconds:     aws.Int64(20),
		})
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("queue", item.queue())).Error("[Queue] Failed to receive messages")
			continue
		}

		for _, message := range output.Messages {
			messages <- message
		}
	}
}

func (m *Messenger) DeleteMessage(item Item, msg *sqs.Message) error {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		return err
	}

	_, err = m.client.DeleteMessage(&sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueUrl),
		ReceiptHandle: msg.ReceiptHandle,
	})

	return err
}

func (m *Messenger) GetQueueSize(item Item) (*int, error) {
	queueUrl, err := m.getQueueUrl(item)
	if err != nil {
		return nil, err
	}

	attrs, err := m.client.GetQueueAttributes(&sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(queueUrl),
		AttributeNames: []*string{aws.String(sqs.QueueAttributeNameApproximateNumberOfMessages)},
	})
	if err != nil {
		return nil, err
	}

	attr, ok := attrs.Attributes[sqs.QueueAttributeNameApproximateNumberOfMessages]
	if !ok {
		return nil, fmt.Errorf("queue attribute missing for %s", item.queue())
	}

	size, err := strconv.Atoi(*attr)
	if err != nil {
		return nil, err
	}

	return &size, nil
}

func (m *Messenger) getQueueUrl(item Item) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if queueUrl, ok := m.queueUrls[item]; ok {
		return queueUrl, nil
	}

	output, err := m.client.GetQueueUrl(&sqs.GetQueueUrlInput{QueueName: aws.String(item.queue())})
	if err != nil {
		return "", err
	}

	m.queueUrls[item] = *output.QueueUrl

	return m.queueUrls[item], nil
}
