// Package checkpoint provides persistence of the sampler chain state,
// so an interrupted run can be continued.
package checkpoint

import (
	"encoding/json"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("checkpoint")

// MAIN is the key name for all chain data.
var MAIN = []byte("main")

// ChainData stores the chain state.
type ChainData struct {
	// Theta is the current state of the chain.
	Theta float64 `json:"theta"`
	// Iter is the number of generated chain elements.
	Iter int `json:"iter"`
	// Accepted is the number of accepted proposals.
	Accepted int `json:"accepted"`
	// Samples is the chain generated so far, including the
	// initial value.
	Samples []float64 `json:"samples"`
	// Final marks a finished chain.
	Final bool `json:"final"`
}

// ChainIO saves and loads chain checkpoints.
type ChainIO struct {
	db      *bolt.DB
	key     []byte
	last    time.Time
	seconds float64
}

// NewChainIO creates a new ChainIO. Old reports true when more than
// seconds passed since the last save.
func NewChainIO(db *bolt.DB, key []byte, seconds float64) (s *ChainIO) {
	s = &ChainIO{
		db:      db,
		key:     key,
		seconds: seconds,
	}
	return
}

// Save saves a chain checkpoint to the database.
func (s *ChainIO) Save(data *ChainData) error {
	// Even if saving fails, we do not want to run this code too often.
	s.SetNow()
	dataB, err := json.Marshal(data)
	if err != nil {
		log.Error("Error serializing checkpoint", err)
		return err
	}
	err = SaveData(s.db, s.key, dataB)
	if err != nil {
		log.Error("Error saving checkpoint", err)
	}
	return err
}

// Load returns the chain state from the checkpoint, nil if there is
// none.
func (s *ChainIO) Load() (*ChainData, error) {
	var data *ChainData

	b, err := LoadData(s.db, s.key)

	if err != nil || b == nil {
		return nil, err
	}

	err = json.Unmarshal(b, &data)

	if err != nil {
		return nil, err
	}

	if data == nil || data.Iter == 0 {
		return nil, nil
	}

	if data.Final {
		log.Noticef("Found finished chain checkpoint (iter=%v, theta=%v)", data.Iter, data.Theta)
	} else {
		log.Noticef("Found unfinished chain checkpoint (iter=%v, theta=%v)", data.Iter, data.Theta)
	}

	return data, nil
}

// Old returns true if last checkpoint save time is too long ago.
func (s *ChainIO) Old() bool {
	if time.Since(s.last).Seconds() > s.seconds {
		return true
	}
	return false
}

// SetNow sets last checkpoint time to now.
func (s *ChainIO) SetNow() {
	s.last = time.Now()
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, key []byte, data []byte) error {
	if db == nil {
		return nil
	}
	err := db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(MAIN)
		if err != nil {
			return err
		}

		err = b.Put(key, data)
		return err
	})
	return err
}

// LoadData loads data from bolt database.
func LoadData(db *bolt.DB, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(MAIN)
		if b == nil {
			return nil
		}

		v := b.Get(key)
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
