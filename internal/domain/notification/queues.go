package notification

// Queue names are case-sensitive and shared with the storefront producers.
const (
	QueueOrderNotifications = "order-notifications"
	QueueStockUpdates       = "stock-updates"
	QueueImageProcessing    = "image-processing"
)

// Queues returns every queue a worker is bound to, in startup order.
func Queues() []string {
	return []string{QueueOrderNotifications, QueueStockUpdates, QueueImageProcessing}
}

func IsKnownQueue(name string) bool {
	for _, q := range Queues() {
		if q == name {
			return true
		}
	}
	return false
}
