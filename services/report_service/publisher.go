package report_service

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// EventPublisher 报表运行完成事件发布器
type EventPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewEventPublisher 连接AMQP并声明事件队列
func NewEventPublisher(url, queueName string) (*EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接AMQP失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建AMQP通道失败: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("声明队列失败: %w", err)
	}

	return &EventPublisher{conn: conn, channel: ch, queue: q}, nil
}

// runCompletedEvent 发布到队列的事件载荷，不含完整报表数据
type runCompletedEvent struct {
	RunID       string `json:"run_id"`
	Fingerprint string `json:"fingerprint"`
	Succeeded   int    `json:"succeeded"`
	Failed      int    `json:"failed"`
	FinishedAt  string `json:"finished_at"`
}

// PublishRunCompleted 发布报表运行完成事件
func (p *EventPublisher) PublishRunCompleted(record *RunRecord) error {
	body, err := json.Marshal(runCompletedEvent{
		RunID:       record.RunID,
		Fingerprint: record.Fingerprint,
		Succeeded:   record.Succeeded,
		Failed:      record.Failed,
		FinishedAt:  record.FinishedAt.Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return err
	}

	return p.channel.Publish(
		"",           // exchange
		p.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

// Close 关闭通道与连接
func (p *EventPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
