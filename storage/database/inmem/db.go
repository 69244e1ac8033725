package inmemdb

import (
	"sync"

	"github.com/trezcool/presence/core/student"
)

type (
	DB struct {
		student *studentTable
	}

	studentTable struct {
		table map[string]*student.Record
		order []string // insertion order, documents are listed the way they were added
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{table: make(map[string]*student.Record)},
	}
}
