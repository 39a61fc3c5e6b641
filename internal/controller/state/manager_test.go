package state

import (
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/callbacktypes"
	"github.com/stretchr/testify/assert"
)

func TestManagerStateAndData(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateRescheduleDate)
	sm.SetData(1, DataSessionID, "abc")
	assert.Equal(t, StateRescheduleDate, sm.GetState(1))

	v, ok := sm.GetData(1, DataSessionID)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	data := sm.GetAllData(1)
	data[DataSessionID] = "changed"
	v, _ = sm.GetData(1, DataSessionID)
	assert.Equal(t, "abc", v, "GetAllData must return a copy")

	// StateNone удаляет запись вместе с данными
	sm.SetState(1, StateNone)
	_, ok = sm.GetData(1, DataSessionID)
	assert.False(t, ok)
	assert.Nil(t, sm.GetAllData(1))
}

func TestManagerDataBeforeState(t *testing.T) {
	sm := NewManager()

	sm.SetData(2, DataSessionID, 5)
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.SetState(2, StateLinkEmail)
	v, ok := sm.GetData(2, DataSessionID)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	sm.ClearState(2)
	assert.Equal(t, StateNone, sm.GetState(2))
}

func TestManagerCleanup(t *testing.T) {
	sm := NewManager()
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return now }

	sm.SetState(1, StateLinkEmail)
	now = now.Add(20 * time.Minute)
	sm.SetState(2, StateRescheduleDate)
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, sm.Cleanup(30*time.Minute))
	assert.Equal(t, StateNone, sm.GetState(1))
	assert.Equal(t, StateRescheduleDate, sm.GetState(2))
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateRescheduleDate)
			sm.SetData(id, DataSessionID, id)
			_ = sm.GetAllData(id)
			sm.ClearState(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, sm.Cleanup(0))
}

func TestAdapter(t *testing.T) {
	sm := NewManager()
	var a callbacktypes.StateManager = NewAdapter(sm)

	a.SetState(3, callbacktypes.UserState(StateRescheduleComment))
	assert.Equal(t, StateRescheduleComment, sm.GetState(3))
	assert.Equal(t, callbacktypes.UserState(StateRescheduleComment), a.GetState(3))
}
