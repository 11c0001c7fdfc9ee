package domain

type Message struct {
	Key   []byte
	Value []byte
}

// DealEventPublisher is the outbound port for lifecycle events. Publishing is
// best-effort: callers log failures and proceed.
type DealEventPublisher interface {
	PublishDealEvent(topic string, msgs ...Message) error
}
