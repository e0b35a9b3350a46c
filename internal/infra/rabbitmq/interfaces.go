package rabbitmq

import "order-processor/internal/infra"

var _ infra.EventPublisher = (*Publisher)(nil)
