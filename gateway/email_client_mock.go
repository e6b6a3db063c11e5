package gateway

import (
	"context"
	"fmt"
	"sync"

	"boxoffice/entity"
)

type EmailsMock struct {
	lock sync.Mutex

	Sent     []EmailMessage
	FailNext int
}

func (m *EmailsMock) Send(_ context.Context, msg EmailMessage) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.FailNext > 0 {
		m.FailNext--
		return "", entity.NotificationError{Reason: "mocked email failure"}
	}

	m.Sent = append(m.Sent, msg)
	return fmt.Sprintf("email-%d", len(m.Sent)), nil
}

func (m *EmailsMock) SentTo(address string) []EmailMessage {
	m.lock.Lock()
	defer m.lock.Unlock()

	var out []EmailMessage
	for _, msg := range m.Sent {
		if msg.To == address {
			out = append(out, msg)
		}
	}
	return out
}
