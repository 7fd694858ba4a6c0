package dbaccess

import (
	"bytes"

	"github.com/eramoss/ghostdagsim/database"
	"github.com/eramoss/ghostdagsim/util/binaryserializer"
)

var (
	metaBucket  = database.MakeBucket([]byte("meta"))
	orderingKey = metaBucket.Key([]byte("ordering"))
)

// StoreOrdering stores the GHOSTDAG total order computed at archive
// time, so that a reload can be checked against the exact sequence the
// simulated node observed.
func StoreOrdering(context *DatabaseContext, ordering []int64) error {
	var buf bytes.Buffer
	err := binaryserializer.PutUint32(&buf, uint32(len(ordering)))
	if err != nil {
		return err
	}
	for _, id := range ordering {
		err = binaryserializer.PutInt64(&buf, id)
		if err != nil {
			return err
		}
	}
	return context.db.Put(orderingKey, buf.Bytes())
}

// FetchOrdering returns the stored total order. Returns ErrNotFound if
// no ordering was archived.
func FetchOrdering(context *DatabaseContext) ([]int64, error) {
	serialized, err := context.db.Get(orderingKey)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(serialized)
	count, err := binaryserializer.Uint32(reader)
	if err != nil {
		return nil, err
	}
	ordering := make([]int64, count)
	for i := range ordering {
		ordering[i], err = binaryserializer.Int64(reader)
		if err != nil {
			return nil, err
		}
	}
	return ordering, nil
}
