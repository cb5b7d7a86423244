package services

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/harshithareddy888/HackConnect/errors"
)

type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpNe  FilterOp = "ne"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
	OpIn  FilterOp = "in"
)

// TeamFilter is one listing condition: field, operator, value. Only
// allow-listed fields and operators ever reach the query, so filters
// are never assembled from raw request strings.
type TeamFilter struct {
	Field string
	Op    FilterOp
	Value interface{}
}

var teamFilterFields = map[string]bool{
	"name":         true,
	"isOpen":       true,
	"maxMembers":   true,
	"skillsNeeded": true,
}

var filterOperators = map[FilterOp]string{
	OpEq:  "$eq",
	OpNe:  "$ne",
	OpGt:  "$gt",
	OpGte: "$gte",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpIn:  "$in",
}

// BuildTeamQuery turns validated filters into the Mongo query
// document. Unknown fields or operators fail with BadRequest.
func BuildTeamQuery(filters []TeamFilter) (bson.M, error) {
	query := bson.M{}
	for _, f := range filters {
		if !teamFilterFields[f.Field] {
			return nil, errors.BadRequest("cannot filter teams by %q", f.Field)
		}
		op, ok := filterOperators[f.Op]
		if !ok {
			return nil, errors.BadRequest("unknown filter operator %q", f.Op)
		}

		cond, exists := query[f.Field]
		if !exists {
			query[f.Field] = bson.M{op: f.Value}
			continue
		}
		cond.(bson.M)[op] = f.Value
	}
	return query, nil
}

var teamSortFields = map[string]bool{
	"name":       true,
	"createdAt":  true,
	"updatedAt":  true,
	"maxMembers": true,
}

// TeamSort resolves a sort key of the form "field" or "-field" into a
// sort document, defaulting to newest first.
func TeamSort(sortBy string) (bson.D, error) {
	if sortBy == "" {
		return bson.D{{Key: "createdAt", Value: -1}}, nil
	}
	dir := 1
	if sortBy[0] == '-' {
		dir = -1
		sortBy = sortBy[1:]
	}
	if !teamSortFields[sortBy] {
		return nil, errors.BadRequest("cannot sort teams by %q", sortBy)
	}
	return bson.D{{Key: sortBy, Value: dir}}, nil
}
