package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"logscope/internal/config"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/rs/zerolog/log"
)

// User properties set on report messages, usable in broker-side SQL filters
const (
	PropOutputPath    = "output_path"
	PropTotalRequests = "total_requests"
)

// ErrSendNotOK is wrapped when the broker answers with a status other than SEND_OK
var ErrSendNotOK = errors.New("broker did not acknowledge message")

// Producer announces finished reports on a RocketMQ topic
type Producer struct {
	client rocketmq.Producer
	topic  string
}

// NewProducer starts a producer publishing to cfg.Topic
func NewProducer(cfg *config.RocketMQConfig) (*Producer, error) {
	if cfg.Topic == "" {
		return nil, errors.New("rocketmq topic is empty")
	}

	p, err := rocketmq.NewProducer(
		producer.WithNameServer([]string{cfg.NameServer}),
		producer.WithRetry(3),
		producer.WithGroupName(cfg.Group+"_producer"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create RocketMQ producer: %w", err)
	}

	if err := p.Start(); err != nil {
		return nil, fmt.Errorf("failed to start RocketMQ producer on %s: %w", cfg.NameServer, err)
	}

	log.Info().
		Str("name_server", cfg.NameServer).
		Str("topic", cfg.Topic).
		Msg("RocketMQ producer started")

	return &Producer{
		client: p,
		topic:  cfg.Topic,
	}, nil
}

// newMessage encodes msg as a JSON body keyed by its run ID
func (p *Producer) newMessage(msg *ReportMessage) (*primitive.Message, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report message: %w", err)
	}

	m := primitive.NewMessage(p.topic, body)
	m.WithTag(ReportTag)
	m.WithKeys([]string{msg.RunID})
	m.WithProperty(PropOutputPath, msg.OutputPath)
	m.WithProperty(PropTotalRequests, strconv.Itoa(msg.TotalRequests))
	return m, nil
}

// SendReport publishes msg synchronously. Only a SEND_OK answer counts as delivered.
func (p *Producer) SendReport(ctx context.Context, msg *ReportMessage) error {
	m, err := p.newMessage(msg)
	if err != nil {
		return err
	}

	result, err := p.client.SendSync(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to send report %s: %w", msg.RunID, err)
	}
	if result.Status != primitive.SendOK {
		return fmt.Errorf("failed to send report %s: %w (status %d)", msg.RunID, ErrSendNotOK, result.Status)
	}

	log.Debug().
		Str("msg_id", result.MsgID).
		Str("run_id", msg.RunID).
		Msg("Report announced on RocketMQ")

	return nil
}

// Close shuts the producer down
func (p *Producer) Close() error {
	return p.client.Shutdown()
}
