package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifierRemembersActivation(t *testing.T) {
	notifier := NewNotifier()
	notifier.Notify()

	select {
	case <-notifier.Channel():
	default:
		t.Fatal("expected pending notification")
	}

	// the activation was consumed
	select {
	case <-notifier.Channel():
		t.Fatal("unexpected second notification")
	default:
	}
}

func TestNotifierCoalescesNotifications(t *testing.T) {
	notifier := NewNotifier()
	for i := 0; i < 10; i++ {
		notifier.Notify()
	}

	count := 0
	for {
		select {
		case <-notifier.Channel():
			count++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 1, count)
}
