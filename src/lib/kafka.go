package lib

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var (
	kafkaMu       sync.Mutex
	kafkaProducer *kafka.Producer
)

// GetKafkaProducer returns the shared producer, creating it on first use.
// A failed creation is retried by the next caller.
func GetKafkaProducer(clientId string) (*kafka.Producer, error) {
	kafkaMu.Lock()
	defer kafkaMu.Unlock()
	if kafkaProducer != nil {
		return kafkaProducer, nil
	}
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"client.id":         clientId,
		"acks":              "all",
	})
	if err != nil {
		log.Printf("Error on producer: %s\n", err.Error())
		return nil, err
	}
	go func() {
		for e := range p.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				log.Printf("[Kafka] delivery to %s failed: %s\n", *m.TopicPartition.Topic, m.TopicPartition.Error.Error())
			}
		}
	}()
	kafkaProducer = p
	return p, nil
}

func KafkaProduceMessage(clientId string, topic string, payload any) error {
	p, err := GetKafkaProducer(clientId)
	if err != nil {
		return err
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding kafka payload: %w", err)
	}
	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          value,
	}, nil)
	if err != nil {
		log.Printf("Error producing to %s: %s\n", topic, err.Error())
		return err
	}
	return nil
}

// KafkaConsume polls topic on behalf of groupId and hands every message
// body to handler until stop is closed.
func KafkaConsume(groupId string, topic string, handler func(payload string), stop <-chan struct{}) error {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": os.Getenv("KAFKA_BROKER"),
		"group.id":          groupId,
		"auto.offset.reset": "smallest",
		"retry.backoff.ms":  100,
	})
	if err != nil {
		log.Printf("Error on consumer: %s\n", err.Error())
		return err
	}
	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		c.Close()
		return err
	}
	go func() {
		defer c.Close()
		log.Printf("[Kafka] %s: waiting for messages...\n", topic)
		for {
			select {
			case <-stop:
				return
			default:
			}
			switch e := c.Poll(100).(type) {
			case *kafka.Message:
				handler(string(e.Value))
			case kafka.Error:
				log.Printf("[Kafka] %s: %s\n", topic, e.Error())
				if e.IsFatal() {
					return
				}
			}
		}
	}()
	return nil
}
