// Package store is konduitd's persistence layer: one snapshot per keytag,
// written by Save in a single bbolt write transaction and read by Load in
// its own read transaction. Adapted from channeldb/db.go:
// a single bbolt.DB, one top-level bucket per keytag, migrated the same
// version-table way channeldb does it.
package store

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/receipt"
	"github.com/cardano-lightning/konduit-go/konduitlog"
)

const dbFileName = "konduit.db"

// migration mutates the database from one schema version to the next, the
// same shape channeldb/db.go uses for its own dbVersions table.
type migration func(tx *bbolt.Tx) error

type version struct {
	number    uint32
	migration migration
}

var dbVersions = []version{
	{number: 0, migration: nil},
}

var (
	metaBucket   = []byte("meta")
	dbVersionKey = []byte("version")
	channelsTop  = []byte("channels")
)

// DB is konduitd's single persistence handle.
type DB struct {
	*bbolt.DB
}

// Open opens (creating if necessary) the keytag store at dbPath.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(dbPath, 0o700); err != nil {
		return nil, err
	}
	path := filepath.Join(dbPath, dbFileName)
	bdb, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	db := &DB{DB: bdb}
	if err := db.createBuckets(); err != nil {
		bdb.Close()
		return nil, err
	}
	if err := db.syncVersions(); err != nil {
		bdb.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) createBuckets() error {
	return d.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(metaBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(channelsTop)
		return err
	})
}

func (d *DB) syncVersions() error {
	return d.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		raw := meta.Get(dbVersionKey)
		current := uint32(0)
		if raw != nil {
			current = binary.BigEndian.Uint32(raw)
		}
		for _, v := range dbVersions {
			if v.number <= current || v.migration == nil {
				continue
			}
			if err := v.migration(tx); err != nil {
				return err
			}
			current = v.number
		}
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, current)
		return meta.Put(dbVersionKey, buf)
	})
}

// keytagKey is the composite key identifying one channel aggregate's
// bucket: encode(verification key) ‖ tag.
func keytagKey(key primitives.VerificationKey, tag primitives.Tag) []byte {
	out := make([]byte, 0, len(key)+len(tag))
	out = append(out, key[:]...)
	out = append(out, tag...)
	return out
}

// snapshot is the encoded form of one keytag's aggregate state.
type snapshot struct {
	Retainer *channel.L1Channel
	Receipt  *receipt.Receipt
	IsActive bool
}

// Load reads a keytag's last persisted aggregate state, returning
// (nil, nil) if nothing has been saved for it yet.
func (d *DB) Load(key primitives.VerificationKey, tag primitives.Tag) (*channel.Aggregate, error) {
	var snap *snapshot
	err := d.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(channelsTop).Bucket(keytagKey(key, tag))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte("snapshot"))
		if raw == nil {
			return nil
		}
		var s snapshot
		if err := codec.Unmarshal(raw, &s); err != nil {
			return err
		}
		snap = &s
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.InvariantViolation, "loading keytag snapshot", err)
	}
	if snap == nil {
		return nil, nil
	}
	agg := channel.NewAggregate(primitives.DefaultParams(), key, tag)
	agg.Retainer = snap.Retainer
	agg.Receipt = snap.Receipt
	agg.IsActive = snap.IsActive
	return agg, nil
}

// Save persists agg's current state for its keytag inside a single bbolt
// write transaction; bbolt serializes every writer against the whole DB,
// the same concurrency model channeldb itself relies on. Save only writes:
// a Load followed by a Save runs as two separate transactions, so a
// load-modify-save sequence is not atomic as a whole.
func (d *DB) Save(agg *channel.Aggregate) error {
	snap := snapshot{Retainer: agg.Retainer, Receipt: agg.Receipt, IsActive: agg.IsActive}
	raw, err := codec.Marshal(snap)
	if err != nil {
		return err
	}
	k := keytagKey(agg.Key, agg.Tag)
	err = d.Update(func(tx *bbolt.Tx) error {
		top := tx.Bucket(channelsTop)
		bucket, err := top.CreateBucketIfNotExists(k)
		if err != nil {
			return err
		}
		return bucket.Put([]byte("snapshot"), raw)
	})
	if err != nil {
		return errs.Wrap(errs.InvariantViolation, "saving keytag snapshot", err)
	}
	konduitlog.StoreLog.Debugf("saved snapshot for keytag")
	return nil
}
