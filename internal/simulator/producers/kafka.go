package producers

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/ardillaCHIKI/App2-taxi/internal/logger"
	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

// KafkaProducer ships dispatch events to Kafka synchronously, one topic
// per event type. Synchronous sends keep event order aligned with the
// simulation's own ordering.
type KafkaProducer struct {
	producer sarama.SyncProducer
	log      zerolog.Logger
}

func NewKafkaProducer(config *models.Config) (*KafkaProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // SyncProducer requires this
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if config.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	}

	brokers := strings.Split(config.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	log := logger.New("kafka")
	log.Info().Strs("brokers", brokers).Msg("kafka producer ready")
	return &KafkaProducer{producer: producer, log: log}, nil
}

func (k *KafkaProducer) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	_, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		k.log.Error().Err(err).Str("topic", topic).Msg("send failed")
		return err
	}

	return nil
}

func (k *KafkaProducer) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}
