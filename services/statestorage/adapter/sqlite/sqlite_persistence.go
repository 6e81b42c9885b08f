// Copyright 2019 the address-value-store authors
// This file is part of the address-value-store library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package sqlite

import (
	"context"
	"database/sql"
	"github.com/orbs-network/address-value-store/instrumentation/metric"
	"github.com/orbs-network/address-value-store/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
	"os"
	"path/filepath"
	"sync"
)

const DB_FILE_NAME = "state.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS state (
	contract TEXT NOT NULL,
	key BLOB NOT NULL,
	value BLOB NOT NULL,
	PRIMARY KEY (contract, key)
);
CREATE TABLE IF NOT EXISTS metadata (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`

type SqliteStatePersistence struct {
	metrics struct {
		numberOfKeys *metric.Gauge
	}
	mutex sync.Mutex
	db    *sql.DB
}

func NewStatePersistence(dataDir string, metricFactory metric.Factory) (*SqliteStatePersistence, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dataDir)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DB_FILE_NAME))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create sqlite schema")
	}

	sp := &SqliteStatePersistence{db: db}
	sp.metrics.numberOfKeys = metricFactory.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count")

	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM state").Scan(&count); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to count sqlite records")
	}
	sp.metrics.numberOfKeys.Update(count)

	return sp, nil
}

// the whole diff and the new height land in one sql transaction
func (sp *SqliteStatePersistence) Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) (err error) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	tx, err := sp.db.BeginTx(context.Background(), nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin sqlite transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for contract, records := range diff {
		for key, value := range records {
			if adapter.IsZeroValue(value) {
				_, err = tx.Exec(`DELETE FROM state WHERE contract = ? AND key = ?`, string(contract), []byte(key))
			} else {
				_, err = tx.Exec(`INSERT INTO state (contract, key, value) VALUES (?, ?, ?)
					ON CONFLICT(contract, key) DO UPDATE SET value = excluded.value`, string(contract), []byte(key), value)
			}
			if err != nil {
				return errors.Wrapf(err, "failed to write record of contract %s", contract)
			}
		}
	}

	if err = writeMetadata(tx, "height", int64(height)); err != nil {
		return err
	}
	if err = writeMetadata(tx, "ts", int64(ts)); err != nil {
		return err
	}

	var count int64
	if err = tx.QueryRow("SELECT COUNT(*) FROM state").Scan(&count); err != nil {
		return errors.Wrap(err, "failed to count sqlite records")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrapf(err, "failed to commit block %d to sqlite", height)
	}

	sp.metrics.numberOfKeys.Update(count)
	return nil
}

func writeMetadata(tx *sql.Tx, name string, value int64) error {
	_, err := tx.Exec(`INSERT INTO metadata (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	return errors.Wrapf(err, "failed to write metadata %s", name)
}

func (sp *SqliteStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	var value []byte
	err := sp.db.QueryRow(`SELECT value FROM state WHERE contract = ? AND key = ?`, string(contract), []byte(key)).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	} else if err != nil {
		return nil, false, errors.Wrap(err, "failed to read sqlite record")
	}
	return value, true, nil
}

func (sp *SqliteStatePersistence) Each(contract primitives.ContractName, f func(key string, value []byte)) error {
	rows, err := sp.db.Query(`SELECT key, value FROM state WHERE contract = ?`, string(contract))
	if err != nil {
		return errors.Wrapf(err, "failed to query sqlite records of contract %s", contract)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return errors.Wrapf(err, "failed to scan sqlite record of contract %s", contract)
		}
		f(string(key), value)
	}
	return errors.Wrapf(rows.Err(), "failed to iterate sqlite records of contract %s", contract)
}

func (sp *SqliteStatePersistence) ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error) {
	height, err := sp.readMetadata("height")
	if err != nil {
		return 0, 0, err
	}
	ts, err := sp.readMetadata("ts")
	if err != nil {
		return 0, 0, err
	}
	return primitives.BlockHeight(height), primitives.TimestampNano(ts), nil
}

func (sp *SqliteStatePersistence) readMetadata(name string) (int64, error) {
	var value int64
	err := sp.db.QueryRow(`SELECT value FROM metadata WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return value, errors.Wrapf(err, "failed to read metadata %s", name)
}

func (sp *SqliteStatePersistence) Close() error {
	return sp.db.Close()
}
