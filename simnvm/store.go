// Package simnvm persists the simulator's device settings (the bits the
// real hardware keeps in non-volatile memory) in a single-bucket bbolt
// database on disk, so the desktop simulator survives restarts the way the
// device survives power cycles.
package simnvm

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var bucketSettings = []byte("settings")

const settingsKey = "word"

// bitVerboseMode and bitBlindSigning mirror the reference's inverted-bit
// encoding: a set bit means the feature is off, so the zero-value word
// (before any settings file exists) is 0x03 and behaves as "everything
// off" without needing an explicit default record.
const (
	bitVerboseMode  uint32 = 0x01
	bitBlindSigning uint32 = 0x02
)

// Settings is the simulator's persisted, human-sense (non-inverted) view of
// the on-device settings word.
type Settings struct {
	VerboseMode  bool
	BlindSigning bool
}

func fromWord(word uint32) Settings {
	return Settings{
		VerboseMode:  word&bitVerboseMode == 0,
		BlindSigning: word&bitBlindSigning == 0,
	}
}

func (s Settings) toWord() uint32 {
	var word uint32
	if !s.VerboseMode {
		word |= bitVerboseMode
	}
	if !s.BlindSigning {
		word |= bitBlindSigning
	}
	return word
}

// AsBytes mirrors the reference Settings::as_bytes wire encoding used to
// answer a get-app-settings command: one byte per flag, 0x00/0x01.
func (s Settings) AsBytes() [2]byte {
	var out [2]byte
	if s.VerboseMode {
		out[0] = 0x01
	}
	if s.BlindSigning {
		out[1] = 0x01
	}
	return out
}

// Store is a bbolt-backed Settings store.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) the settings database under datadir.
func Open(datadir string) (*Store, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := os.MkdirAll(datadir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", datadir, err)
	}

	path := filepath.Join(datadir, "settings.db")
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSettings)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Get reads the current settings, returning the all-off default
// (VerboseMode=false, BlindSigning=false) if none have been written yet.
func (s *Store) Get() (Settings, error) {
	var word uint32
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSettings).Get([]byte(settingsKey))
		if len(b) != 4 {
			word = bitVerboseMode | bitBlindSigning
			return nil
		}
		word = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	return fromWord(word), nil
}

// Update persists settings, skipping the write entirely if the encoded
// word is unchanged, mirroring Settings::update's dirty check.
func (s *Store) Update(settings Settings) error {
	word := settings.toWord()
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		existing := bucket.Get([]byte(settingsKey))
		if len(existing) == 4 {
			cur := uint32(existing[0]) | uint32(existing[1])<<8 | uint32(existing[2])<<16 | uint32(existing[3])<<24
			if cur == word {
				return nil
			}
		}
		encoded := []byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}
		return bucket.Put([]byte(settingsKey), encoded)
	})
}
