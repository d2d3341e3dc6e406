package store

import "database/sql"

// Store provides access to the wp_options repositories.
type Store struct {
	db       *sql.DB
	options  *OptionsStore
	fixtures *FixtureStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		options:  NewOptionsStore(newQueryInterceptor(db)),
		fixtures: NewFixtureStore(db),
	}
}

func (s *Store) Options() *OptionsStore {
	return s.options
}

func (s *Store) Fixtures() *FixtureStore {
	return s.fixtures
}

func (s *Store) Close() error {
	return s.db.Close()
}
