// Package rdbmodel implements a Markov Decision Process model that keeps its
// transition and reward data in a RocksDB database, rather than in memory.
//
// It is the RocksDB twin of ldbmodel: substantially slower than an in-memory
// SparseModel, but constant in memory no matter how large the model is.
package rdbmodel

import (
	rocksdb "github.com/tecbot/gorocksdb"
)

type Params struct {
	Path         string
	Options      *rocksdb.Options
	ReadOptions  *rocksdb.ReadOptions
	WriteOptions *rocksdb.WriteOptions
}

func DefaultParams(path string) Params {
	opts := rocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)

	return Params{
		Path:         path,
		Options:      opts,
		ReadOptions:  rocksdb.NewDefaultReadOptions(),
		WriteOptions: rocksdb.NewDefaultWriteOptions(),
	}
}

func (p Params) Close() {
	p.Options.Destroy()
	p.ReadOptions.Destroy()
	p.WriteOptions.Destroy()
}
