// AngelaMos | 2026
// fake_test.go

package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/carterperez-dev/garage-saas/internal/core"
)

type storedCar struct {
	garageID int64
	car      CarContext
}

type memRepo struct {
	mu            sync.Mutex
	garages       map[int64]bool
	cars          map[int64]storedCar
	customers     map[string]int64
	conversations map[int64]*Conversation
	messages      []Message
	clock         time.Time
	failSave      error
}

func newMemRepo(garages ...int64) *memRepo {
	m := &memRepo{
		garages:       make(map[int64]bool),
		cars:          make(map[int64]storedCar),
		customers:     make(map[string]int64),
		conversations: make(map[int64]*Conversation),
		clock:         time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC),
	}
	for _, g := range garages {
		m.garages[g] = true
	}
	return m
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) addCar(garageID int64, car CarContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cars[car.ID] = storedCar{garageID: garageID, car: car}
}

func (m *memRepo) addCustomer(garageID int64, phone string, customerID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[fmt.Sprintf("%d/%s", garageID, phone)] = customerID
}

func (m *memRepo) owned(garageID, id int64) (*Conversation, bool) {
	c, ok := m.conversations[id]
	if !ok || c.GarageID != garageID {
		return nil, false
	}
	return c, true
}

func (m *memRepo) ListConversations(_ context.Context, garageID int64) ([]ConversationSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []ConversationSummary{}
	for _, c := range m.conversations {
		if c.GarageID != garageID {
			continue
		}
		var count int64
		for _, msg := range m.messages {
			if msg.ConversationID == c.ID {
				count++
			}
		}
		out = append(out, ConversationSummary{Conversation: *c, MessageCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessage.After(out[j].LastMessage) })
	return out, nil
}

func (m *memRepo) ListMessages(_ context.Context, garageID, id int64) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owned(garageID, id); !ok {
		return nil, fmt.Errorf("list messages: %w", core.ErrNotFound)
	}
	out := []Message{}
	for _, msg := range m.messages {
		if msg.ConversationID == id {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memRepo) insert(conversationID int64, sender, text string, escalated bool) Message {
	msg := Message{
		ID:             int64(len(m.messages) + 1),
		ConversationID: conversationID,
		SenderType:     sender,
		MessageText:    text,
		IsBotEscalated: escalated,
		CreatedAt:      m.tick(),
	}
	m.messages = append(m.messages, msg)
	return msg
}

func (m *memRepo) AddGarageMessage(
	_ context.Context,
	garageID, id int64,
	text string,
) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.owned(garageID, id)
	if !ok {
		return nil, fmt.Errorf("add garage message: %w", core.ErrNotFound)
	}
	c.LastMessage = m.tick()
	msg := m.insert(id, SenderGarage, text, false)
	return &msg, nil
}

func (m *memRepo) FindCar(_ context.Context, garageID, carID int64) (*CarContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.cars[carID]
	if !ok || s.garageID != garageID {
		return nil, fmt.Errorf("find car: %w", core.ErrNotFound)
	}
	car := s.car
	return &car, nil
}

func (m *memRepo) SaveExchange(_ context.Context, ex Exchange) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave != nil {
		return 0, m.failSave
	}

	var id int64
	if ex.ConversationID != nil {
		c, ok := m.owned(ex.GarageID, *ex.ConversationID)
		if !ok {
			return 0, fmt.Errorf("save chat exchange: %w", core.ErrNotFound)
		}
		id = c.ID
	} else {
		if !m.garages[ex.GarageID] {
			return 0, fmt.Errorf("save chat exchange: %w", ErrGarageNotFound)
		}
		c := &Conversation{
			ID:       int64(len(m.conversations) + 1),
			GarageID: ex.GarageID,
			CarID:    ex.CarID,
			Status:   ConversationActive,
		}
		if cid, ok := m.customers[fmt.Sprintf("%d/%s", ex.GarageID, ex.CustomerPhone)]; ok && ex.CustomerPhone != "" {
			c.CustomerID = &cid
		}
		c.CreatedAt = m.tick()
		m.conversations[c.ID] = c
		id = c.ID
	}

	m.insert(id, SenderCustomer, ex.CustomerText, false)
	m.insert(id, SenderBot, ex.BotText, ex.Escalated)
	m.conversations[id].LastMessage = m.tick()
	return id, nil
}

var errStoreDown = errors.New("store down")
