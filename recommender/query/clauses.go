// Package query models the composite retrieval request sent to the
// feature store as a list of typed clause variants. Each variant knows
// its own search-DSL JSON shape, so the "which clauses are active"
// logic stays statically checkable instead of living in an untyped map.
package query

import "encoding/json"

// Clause is one boolean sub-query. Implementations marshal directly to
// their DSL representation.
type Clause interface {
	json.Marshaler
}

// TermsClause matches documents whose field contains any of the values.
type TermsClause struct {
	Field  string
	Values []string
	Boost  float64
}

func (c TermsClause) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{c.Field: c.Values}
	if c.Boost > 0 {
		body["boost"] = c.Boost
	}
	return json.Marshal(map[string]interface{}{"terms": body})
}

// TermClause matches documents whose field equals the value exactly.
type TermClause struct {
	Field string
	Value string
	Boost float64
}

func (c TermClause) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{"value": c.Value}
	if c.Boost > 0 {
		body["boost"] = c.Boost
	}
	return json.Marshal(map[string]interface{}{
		"term": map[string]interface{}{c.Field: body},
	})
}

// MatchClause is a fuzzy full-text match on a single field.
type MatchClause struct {
	Field     string
	Query     string
	Fuzziness string
	Boost     float64
}

func (c MatchClause) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{"query": c.Query}
	if c.Fuzziness != "" {
		body["fuzziness"] = c.Fuzziness
	}
	if c.Boost > 0 {
		body["boost"] = c.Boost
	}
	return json.Marshal(map[string]interface{}{
		"match": map[string]interface{}{c.Field: body},
	})
}

// IDsClause matches documents by id; used inside must_not for
// exclusions.
type IDsClause struct {
	Values []string
}

func (c IDsClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"ids": map[string]interface{}{"values": c.Values},
	})
}

// MatchAllClause matches every document.
type MatchAllClause struct{}

func (c MatchAllClause) MarshalJSON() ([]byte, error) {
	return []byte(`{"match_all":{}}`), nil
}

// KnnClause is one approximate nearest-neighbor sub-query against an
// embedding field.
type KnnClause struct {
	Field         string
	QueryVector   []float64
	K             int
	NumCandidates int
	Boost         float64
	Filter        []Clause
}

func (c KnnClause) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"field":          c.Field,
		"query_vector":   c.QueryVector,
		"k":              c.K,
		"num_candidates": c.NumCandidates,
	}
	if c.Boost > 0 {
		body["boost"] = c.Boost
	}
	if len(c.Filter) > 0 {
		body["filter"] = map[string]interface{}{
			"bool": map[string]interface{}{"must_not": c.Filter},
		}
	}
	return json.Marshal(body)
}

// DecayFunction is one bell-shaped numeric proximity scoring function,
// peaking at Origin and falling off over Scale.
type DecayFunction struct {
	Field  string
	Origin float64
	Scale  float64
	Offset float64
	Decay  float64
	Weight float64
}

func (f DecayFunction) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"gauss": map[string]interface{}{
			f.Field: map[string]interface{}{
				"origin": f.Origin,
				"scale":  f.Scale,
				"offset": f.Offset,
				"decay":  f.Decay,
			},
		},
		"weight": f.Weight,
	})
}

// Request is the full composite retrieval request: zero or more k-NN
// clauses, a boolean query with OR'd should clauses, an exclusion set,
// and an optional numeric-function scoring block whose functions sum
// and then multiply into the base score.
type Request struct {
	Size      int
	Knn       []KnnClause
	Should    []Clause
	MustNot   []Clause
	Functions []DecayFunction
}

func (r *Request) MarshalJSON() ([]byte, error) {
	boolBody := map[string]interface{}{}
	if len(r.Should) > 0 {
		boolBody["should"] = r.Should
		boolBody["minimum_should_match"] = 1
	} else {
		// No active clause family left: degrade to match-all so the
		// exclusion filter still applies.
		boolBody["must"] = []Clause{MatchAllClause{}}
	}
	if len(r.MustNot) > 0 {
		boolBody["must_not"] = r.MustNot
	}

	queryBody := map[string]interface{}{"bool": boolBody}
	if len(r.Functions) > 0 {
		queryBody = map[string]interface{}{
			"function_score": map[string]interface{}{
				"query":      map[string]interface{}{"bool": boolBody},
				"functions":  r.Functions,
				"score_mode": "sum",
				"boost_mode": "multiply",
			},
		}
	}

	body := map[string]interface{}{
		"size":  r.Size,
		"query": queryBody,
	}
	if len(r.Knn) > 0 {
		body["knn"] = r.Knn
	}
	return json.Marshal(body)
}
