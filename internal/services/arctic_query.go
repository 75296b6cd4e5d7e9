package services

import (
	"fmt"
	"strconv"
	"strings"
)

// ArcticQuery builds filter expressions for the Arctic Reservations REST
// API, e.g.
//
//	triptypeid = 191 AND canceled = false AND businessgroupid IN (1,3,4,23)
//	start.daterelative APPLY("operator", "on-or-after")
//
// Terms are AND-joined; OrGroup nests an OR disjunction.
type ArcticQuery struct {
	terms []string
}

// Relative-date operators accepted by APPLY.
const (
	ArcticOnOrAfter  = "on-or-after"
	ArcticOnOrBefore = "on-or-before"
	ArcticAfter      = "after"
	ArcticBefore     = "before"
	ArcticOn         = "on"
)

func NewArcticQuery() *ArcticQuery {
	return &ArcticQuery{}
}

func (q *ArcticQuery) Eq(field string, value interface{}) *ArcticQuery {
	q.terms = append(q.terms, fmt.Sprintf("%s = %s", field, arcticValue(value)))
	return q
}

func (q *ArcticQuery) In(field string, values ...int) *ArcticQuery {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	q.terms = append(q.terms, fmt.Sprintf("%s IN (%s)", field, strings.Join(parts, ",")))
	return q
}

// RelativeDate emits an APPLY(...) term against a date field. An optional
// day count offsets the comparison from today.
func (q *ArcticQuery) RelativeDate(field string, operator string, days ...int) *ArcticQuery {
	term := fmt.Sprintf(`%s.daterelative APPLY("operator", %q)`, field, operator)
	if len(days) > 0 {
		term = fmt.Sprintf(`%s.daterelative APPLY("operator", %q, "days", %d)`, field, operator, days[0])
	}
	q.terms = append(q.terms, term)
	return q
}

// OrGroup appends a parenthesized OR of the given queries' terms.
func (q *ArcticQuery) OrGroup(queries ...*ArcticQuery) *ArcticQuery {
	var parts []string
	for _, sub := range queries {
		parts = append(parts, sub.String())
	}
	q.terms = append(q.terms, "("+strings.Join(parts, " OR ")+")")
	return q
}

func (q *ArcticQuery) String() string {
	return strings.Join(q.terms, " AND ")
}

func arcticValue(value interface{}) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
