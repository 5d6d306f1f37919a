package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/belcovid/internal/config"
	"github.com/couchcryptid/belcovid/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// PointMessage is the JSON value of one published chart point.
type PointMessage struct {
	Chart  string  `json:"chart"`
	Line   string  `json:"line"`
	Date   string  `json:"date"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	YLabel string  `json:"y_label"`
}

// messageWriter is the subset of *kafkago.Writer the sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes chart points to a Kafka topic, one message per point,
// keyed by chart and date so downstream consumers can compact per day.
// It implements analysis.ChartSink.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Render serializes every point of every line of c and publishes them in a
// single WriteMessages call.
func (w *Writer) Render(ctx context.Context, c domain.Chart) error {
	var msgs []kafkago.Message
	for _, line := range c.Lines {
		for _, p := range line.Series {
			msg, err := serializeToMessage(c, line.Name, p)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish chart %s: %w", c.Name, err)
	}
	w.logger.Info("chart published", "chart", c.Name, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one chart point into a Kafka message.
func serializeToMessage(c domain.Chart, line string, p domain.Point) (kafkago.Message, error) {
	data, err := json.Marshal(PointMessage{
		Chart:  c.Name,
		Line:   line,
		Date:   p.Date,
		Label:  p.Label,
		Value:  p.Value,
		YLabel: c.YLabel,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize point %s/%s: %w", c.Name, p.Date, err)
	}
	return kafkago.Message{
		Key:   []byte(c.Name + "|" + line + "|" + p.Date),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "chart", Value: []byte(c.Name)},
			{Key: "line", Value: []byte(line)},
		},
	}, nil
}
