package league

import "context"

// Store defines the persistence operations of the league.
type Store interface {
	AddPlayer(ctx context.Context, name string) (*Player, error)
	GetPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)

	AddLocation(ctx context.Context, name string, address *string) (*Location, error)
	UpdateLocation(ctx context.Context, id, name string, address *string) (*Location, error)
	GetLocation(ctx context.Context, id string) (*Location, error)
	ListLocations(ctx context.Context) ([]Location, error)

	AddMatch(ctx context.Context, m NewMatch) (*Match, error)
	UpdateMatch(ctx context.Context, id string, u MatchUpdate) (*Match, error)
	GetMatch(ctx context.Context, id string) (*Match, error)
	// ListMatches returns every match ordered by date, then by insertion.
	ListMatches(ctx context.Context) ([]Match, error)

	// WithTx runs fn inside a single transaction. The transaction commits
	// only if fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Clear(ctx context.Context) error
}

// Tx is the subset of store operations available inside WithTx.
type Tx interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	ListLocations(ctx context.Context) ([]Location, error)
	InsertPlayer(ctx context.Context, p Player) error
	InsertMatch(ctx context.Context, m Match) error
}
