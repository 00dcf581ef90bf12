package rabbitmq

// CreditEventsExchange — direct-exchange для событий жизненного цикла
// углеродных кредитов.
const CreditEventsExchange = "credit.events"

// Routing keys событий кредитов.
const (
	RoutingKeyCreditSold     = "credit.sold"
	RoutingKeyCreditVerified = "credit.verified"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetCreditQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "credit.sold.queue", RoutingKey: RoutingKeyCreditSold},
		{QueueName: "credit.verified.queue", RoutingKey: RoutingKeyCreditVerified},
		// при необходимости дополнительные очереди для других воркеров
	}
}
