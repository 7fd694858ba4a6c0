package database

// DataAccessor defines the common interface by which data gets
// accessed in a generic ghostdagsim database.
type DataAccessor interface {
	// Put sets the value of the given key. It overwrites any previous
	// value for that key.
	Put(key *Key, value []byte) error

	// Get gets the value of the given key. It returns ErrNotFound if
	// the given key does not exist.
	Get(key *Key) ([]byte, error)

	// Has returns true if the database does contain the given key.
	Has(key *Key) (bool, error)

	// Delete deletes the value for the given key. Will not return an
	// error if the key doesn't exist.
	Delete(key *Key) error
}

// Database defines the interface of a database that can begin
// cursors over buckets and close itself.
type Database interface {
	DataAccessor

	// Cursor begins a new cursor over the given bucket.
	Cursor(bucket *Bucket) (Cursor, error)

	// Close closes the database.
	Close() error
}

// Cursor iterates over database entries of a given bucket in key
// order.
type Cursor interface {
	// Next moves the iterator to the next key/value pair. It returns
	// false if the iterator is exhausted.
	Next() bool

	// Key returns the key of the current key/value pair, or ErrNotFound
	// if done.
	Key() (*Key, error)

	// Value returns the value of the current key/value pair, or
	// ErrNotFound if done.
	Value() ([]byte, error)

	// Close releases the iterator.
	Close() error
}
