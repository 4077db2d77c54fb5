package store

import (
	"encoding/binary"
	"strings"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
	. "src.esval.dev/pkg/store/storedefs"
)

const bucketHistory = "history"

func init() {
	initDB["initialize evaluation history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	}
}

// NextEntrySeq returns the next sequence number of the evaluation history.
func (s *dbStore) NextEntrySeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddEntry adds a new entry to the evaluation history. The Seq field of the
// entry is ignored, and the assigned sequence number is returned.
func (s *dbStore) AddEntry(e Entry) (int, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		logger.Printf("failed to add history entry for %s: %v", e.Name, err)
	}
	return int(seq), err
}

// DelEntry deletes a history entry with the given sequence number.
func (s *dbStore) DelEntry(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Entry queries the history entry with the specified sequence number.
func (s *dbStore) Entry(seq int) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingEntry
		}
		var err error
		e, err = unmarshalEntry(seq, v)
		return err
	})
	return e, err
}

// IterateEntries iterates all the entries in the specified range, and calls
// the callback with each entry sequentially.
func (s *dbStore) IterateEntries(from, upto int, f func(Entry)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			e, err := unmarshalEntry(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			f(e)
		}
		return nil
	})
}

// EntriesWithSeq returns all entries within the specified range.
func (s *dbStore) EntriesWithSeq(from, upto int) ([]Entry, error) {
	var entries []Entry
	err := s.IterateEntries(from, upto, func(e Entry) {
		entries = append(entries, e)
	})
	return entries, err
}

// LastEntry finds the last entry whose name has the given prefix.
func (s *dbStore) LastEntry(namePrefix string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			candidate, err := unmarshalEntry(int(unmarshalSeq(k)), v)
			if err != nil {
				return err
			}
			if strings.HasPrefix(candidate.Name, namePrefix) {
				e = candidate
				return nil
			}
		}
		return ErrNoMatchingEntry
	})
	return e, err
}

func unmarshalEntry(seq int, data []byte) (Entry, error) {
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Entry{}, err
	}
	e.Seq = seq
	return e, nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
