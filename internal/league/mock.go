package league

import (
	"context"
	"sync"
)

var _ Store = (*MockStore)(nil)
var _ Tx = (*MockTx)(nil)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc      func(ctx context.Context, name string) (*Player, error)
	GetPlayerFunc      func(ctx context.Context, id string) (*Player, error)
	ListPlayersFunc    func(ctx context.Context) ([]Player, error)
	AddLocationFunc    func(ctx context.Context, name string, address *string) (*Location, error)
	UpdateLocationFunc func(ctx context.Context, id, name string, address *string) (*Location, error)
	GetLocationFunc    func(ctx context.Context, id string) (*Location, error)
	ListLocationsFunc  func(ctx context.Context) ([]Location, error)
	AddMatchFunc       func(ctx context.Context, m NewMatch) (*Match, error)
	UpdateMatchFunc    func(ctx context.Context, id string, u MatchUpdate) (*Match, error)
	GetMatchFunc       func(ctx context.Context, id string) (*Match, error)
	ListMatchesFunc    func(ctx context.Context) ([]Match, error)
	ClearFunc          func(ctx context.Context) error

	// Tx is handed to WithTx callbacks. Its inserts are discarded when the
	// callback fails.
	Tx *MockTx

	// Call records
	AddPlayerCalls []string
	AddMatchCalls  []NewMatch
	WithTxCalls    int
	Commits        int
	Rollbacks      int
}

// NewMock creates a new mock instance with an empty transaction.
func NewMock() *MockStore {
	return &MockStore{Tx: &MockTx{}}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.AddMatchCalls = nil
	m.WithTxCalls = 0
	m.Commits = 0
	m.Rollbacks = 0
}

func (m *MockStore) AddPlayer(ctx context.Context, name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, name)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(ctx, name)
	}
	return &Player{ID: name, Name: name}, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, id)
	}
	return nil, NotFoundf("player %s not found", id)
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	if m.Tx != nil {
		return m.Tx.ListPlayers(ctx)
	}
	return []Player{}, nil
}

func (m *MockStore) AddLocation(ctx context.Context, name string, address *string) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddLocationFunc != nil {
		return m.AddLocationFunc(ctx, name, address)
	}
	return &Location{ID: name, Name: name, Address: address}, nil
}

func (m *MockStore) UpdateLocation(ctx context.Context, id, name string, address *string) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateLocationFunc != nil {
		return m.UpdateLocationFunc(ctx, id, name, address)
	}
	return &Location{ID: id, Name: name, Address: address}, nil
}

func (m *MockStore) GetLocation(ctx context.Context, id string) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLocationFunc != nil {
		return m.GetLocationFunc(ctx, id)
	}
	return nil, NotFoundf("location %s not found", id)
}

func (m *MockStore) ListLocations(ctx context.Context) ([]Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListLocationsFunc != nil {
		return m.ListLocationsFunc(ctx)
	}
	if m.Tx != nil {
		return m.Tx.ListLocations(ctx)
	}
	return []Location{}, nil
}

func (m *MockStore) AddMatch(ctx context.Context, nm NewMatch) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddMatchCalls = append(m.AddMatchCalls, nm)
	if m.AddMatchFunc != nil {
		return m.AddMatchFunc(ctx, nm)
	}
	return &Match{}, nil
}

func (m *MockStore) UpdateMatch(ctx context.Context, id string, u MatchUpdate) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(ctx, id, u)
	}
	return nil, NotFoundf("match %s not found", id)
}

func (m *MockStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, id)
	}
	return nil, NotFoundf("match %s not found", id)
}

func (m *MockStore) ListMatches(ctx context.Context) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(ctx)
	}
	if m.Tx != nil {
		m.Tx.mu.Lock()
		defer m.Tx.mu.Unlock()
		return append([]Match{}, m.Tx.Matches...), nil
	}
	return []Match{}, nil
}

// WithTx runs fn against m.Tx without holding the mock lock, so fn may call
// back into the mock.
func (m *MockStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	m.WithTxCalls++
	tx := m.Tx
	if tx == nil {
		tx = &MockTx{}
		m.Tx = tx
	}
	m.mu.Unlock()

	snapshot := tx.begin()
	if err := fn(tx); err != nil {
		tx.rollback(snapshot)
		m.mu.Lock()
		m.Rollbacks++
		m.mu.Unlock()
		return err
	}
	m.mu.Lock()
	m.Commits++
	m.mu.Unlock()
	return nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// MockTx is an in-memory Tx. Players and Locations seed the roster; inserts
// are appended to Players and Matches. Without a ...Func override the
// MockStore list methods read the committed contents of its Tx.
type MockTx struct {
	mu sync.Mutex

	Players   []Player
	Locations []Location
	Matches   []Match

	InsertPlayerFunc func(ctx context.Context, p Player) error
	InsertMatchFunc  func(ctx context.Context, m Match) error
}

type txSnapshot struct {
	players, matches int
}

func (t *MockTx) begin() txSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return txSnapshot{players: len(t.Players), matches: len(t.Matches)}
}

func (t *MockTx) rollback(s txSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Players = t.Players[:s.players]
	t.Matches = t.Matches[:s.matches]
}

func (t *MockTx) ListPlayers(ctx context.Context) ([]Player, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Player{}, t.Players...), nil
}

func (t *MockTx) ListLocations(ctx context.Context) ([]Location, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Location{}, t.Locations...), nil
}

func (t *MockTx) InsertPlayer(ctx context.Context, p Player) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.InsertPlayerFunc != nil {
		if err := t.InsertPlayerFunc(ctx, p); err != nil {
			return err
		}
	}
	t.Players = append(t.Players, p)
	return nil
}

func (t *MockTx) InsertMatch(ctx context.Context, m Match) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.InsertMatchFunc != nil {
		if err := t.InsertMatchFunc(ctx, m); err != nil {
			return err
		}
	}
	t.Matches = append(t.Matches, m)
	return nil
}
