package rocketmq

import (
	"Marche/config"
	"Marche/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// InitProducer 初始化消息生产者；未配置时返回 nil，调用方跳过发消息
func InitProducer(cfg *config.RocketMQConfig) rocketmq.Producer {
	if cfg == nil || len(cfg.NameServer) == 0 {
		log.L.Info("rocketmq not configured, events disabled")
		return nil
	}
	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(retry),
	)
	if err != nil {
		log.L.Error("new rocketmq producer failed", zap.Error(err))
		return nil
	}
	if err := p.Start(); err != nil {
		log.L.Error("start rocketmq producer failed", zap.Error(err))
		return nil
	}
	log.L.Info("init producer success")
	return p
}

// SendMsg 发送消息，失败只记日志，业务不回滚
func SendMsg(p rocketmq.Producer, topic string, body []byte) error {
	if p == nil {
		return nil
	}
	msg := &primitive.Message{
		Topic: topic,
		Body:  body,
	}
	_, err := p.SendSync(context.Background(), msg)
	return err
}
