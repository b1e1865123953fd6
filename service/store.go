package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
	"go.etcd.io/bbolt"
)

const recordsBucket = "records"

// RecordStore persists extraction results.
type RecordStore interface {
	Save(rec *dto.StoredRecord) error
	Get(id string) (*dto.StoredRecord, error)
	// List returns records oldest first.
	List() ([]*dto.StoredRecord, error)
	Delete(id string) error
	Close() error
}

// BoltStore implements RecordStore on a single bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recordsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Save(rec *dto.StoredRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("saving record: empty id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(recordsBucket)).Put([]byte(rec.ID), data)
	})
}

func (b *BoltStore) Get(id string) (*dto.StoredRecord, error) {
	var rec *dto.StoredRecord
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(recordsBucket)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", dto.ErrRecordNotFound, id)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (b *BoltStore) List() ([]*dto.StoredRecord, error) {
	records := make([]*dto.StoredRecord, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(recordsBucket)).ForEach(func(k, v []byte) error {
			var rec dto.StoredRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling record %s: %w", k, err)
			}
			records = append(records, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].ProcessedAt.Equal(records[j].ProcessedAt) {
			return records[i].ProcessedAt.Before(records[j].ProcessedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// Delete reports dto.ErrRecordNotFound for unknown ids.
func (b *BoltStore) Delete(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordsBucket))
		if bucket.Get([]byte(id)) == nil {
			return fmt.Errorf("%w: %s", dto.ErrRecordNotFound, id)
		}
		return bucket.Delete([]byte(id))
	})
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
