package jobs

import "github.com/Wege0921/prodev-be-ecommerce/pkg/queue"

// RegisterAll registers every job type with the queue so workers can
// deserialize envelopes by name. Names must stay stable across deploys;
// renaming a type here strands jobs already sitting in Redis.
func RegisterAll() {
	queue.Register("*jobs.OrderNotification", func() queue.Job { return &OrderNotification{} })
	queue.Register("*jobs.ContactNotification", func() queue.Job { return &ContactNotification{} })
	queue.Register("*jobs.PasswordResetNotification", func() queue.Job { return &PasswordResetNotification{} })
	queue.Register("*jobs.PaymentProof", func() queue.Job { return &PaymentProof{} })
}
