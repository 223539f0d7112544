package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/studytrack/internal/models"
)

var pathToDB string

var errAlreadyRunning = errors.New(
	"is studytrack already running? Only one instance can be active at a time",
)

const stateBucket = "state"

// stateKey holds the entire serialized AppState as a single blob.
var stateKey = []byte("app_state")

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB

	initialCoins int
}

// SetInitialCoins sets the balance granted when no usable state exists
// yet. Non-positive values are ignored and the built-in default applies.
func (c *Client) SetInitialCoins(coins int) {
	if coins > 0 {
		c.initialCoins = coins
	}
}

// defaultState is the state handed out for a fresh install or an
// unreadable blob, seeded with the configured starting balance.
func (c *Client) defaultState() *models.AppState {
	state := models.NewAppState()

	if c.initialCoins > 0 {
		state.Coins = c.initialCoins
	}

	return state
}

// GetState loads the persisted application state. Missing or unreadable
// data degrades to the default state so that a corrupt blob never blocks
// startup.
func (c *Client) GetState() (*models.AppState, error) {
	state := c.defaultState()

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(stateBucket)).Get(stateKey)
		if len(b) == 0 {
			return nil
		}

		uerr := json.Unmarshal(b, state)
		if uerr != nil {
			slog.Warn(
				"discarding corrupt state blob",
				slog.Any("error", uerr),
			)

			*state = *c.defaultState()
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	state.Normalise()

	return state, nil
}

// SaveState persists the full application state in a single transaction.
func (c *Client) SaveState(state *models.AppState) error {
	value, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put(stateKey, value)
	})
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		DB:           db,
		initialCoins: c.initialCoins,
	}

	return nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// a second instance holding the file lock surfaces as a timeout
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(stateBucket))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{DB: db}, nil
}
