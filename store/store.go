package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ContextTimeout = time.Duration(20) * time.Second
)

type Sort struct {
	Attribute string
	Ascending bool
}

func (s *Sort) Order() int {
	if s.Ascending {
		return 1
	}
	return -1
}

// SortStage builds a find sort document. _id is always appended so documents with
// equal keys come back in a stable order.
func SortStage(sorts ...*Sort) bson.D {
	var s bson.D
	for _, sort := range sorts {
		if sort != nil && sort.Attribute != "" {
			s = append(s, bson.E{Key: sort.Attribute, Value: sort.Order()})
		}
	}
	return append(s, bson.E{Key: "_id", Value: 1})
}

func NewDbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), ContextTimeout)
}
