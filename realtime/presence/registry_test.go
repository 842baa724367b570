package presence

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobyt50/PPALink-sub000/pkg/kernel"
)

type stubConn struct {
	id string
}

func (c *stubConn) WriteJSON(any) error { return nil }
func (c *stubConn) Close() error        { return nil }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	alice := kernel.UserID("alice")
	bob := kernel.UserID("bob")

	tab1 := &stubConn{id: "tab1"}
	tab2 := &stubConn{id: "tab2"}
	r.Register(alice, tab1)
	r.Register(alice, tab2)
	r.Register(bob, &stubConn{id: "bob-tab"})

	assert.True(t, r.Online(alice))
	assert.True(t, r.Online(bob))
	assert.False(t, r.Online(kernel.UserID("nobody")))

	// Both of alice's tabs, none of bob's.
	handles := r.Lookup([]kernel.UserID{alice, "nobody"})
	assert.Len(t, handles, 2)
}

func TestRegistry_UnregisterDropsUserOnLastConn(t *testing.T) {
	r := NewRegistry()

	alice := kernel.UserID("alice")
	tab1 := &stubConn{id: "tab1"}
	tab2 := &stubConn{id: "tab2"}
	r.Register(alice, tab1)
	r.Register(alice, tab2)

	r.Unregister(alice, tab1)
	assert.True(t, r.Online(alice))

	r.Unregister(alice, tab2)
	assert.False(t, r.Online(alice))
	assert.Empty(t, r.Lookup([]kernel.UserID{alice}))

	// Unregistering an unknown connection is a no-op.
	r.Unregister(alice, tab1)
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := kernel.UserID(fmt.Sprintf("user-%d", i%5))
			conn := &stubConn{id: fmt.Sprintf("conn-%d", i)}
			r.Register(userID, conn)
			r.Lookup([]kernel.UserID{userID})
			r.Unregister(userID, conn)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		assert.False(t, r.Online(kernel.UserID(fmt.Sprintf("user-%d", i))))
	}
}
