package scorecard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"admission-workers/internal/models"
)

const DefaultIndex = "scorecard-schools"

var (
	// ErrUnsupportedFilter is returned for zip-radius searches; the mirror
	// holds no geo index.
	ErrUnsupportedFilter = errors.New("filter not supported by index backend")
	ErrIndexNotFound     = errors.New("index not found")
	ErrIndexQuery        = errors.New("index query failed")
)

// IndexClient serves the collaborator contract from an Elasticsearch index
// holding Scorecard rows with their original dotted field names.
type IndexClient struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexClient(client *elasticsearch.Client, index string) *IndexClient {
	if index == "" {
		index = DefaultIndex
	}
	return &IndexClient{client: client, index: index}
}

type indexResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *IndexClient) Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error) {
	query, err := buildIndexQuery(q)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(body)),
		c.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndexQuery, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrIndexQuery, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, c.index)
	}
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("%w: %s: %s", ErrIndexQuery, res.Status(), msg)
	}

	var decoded indexResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrIndexQuery, err)
	}

	records := make([]models.InstitutionRecord, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		rec, err := DecodeRecord(hit.Source)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return &models.SearchPage{
		Results: FilterByTitle(records, q.TitleKeyword),
		Total:   decoded.Hits.Total.Value,
	}, nil
}

func buildIndexQuery(q models.SearchQuery) (map[string]interface{}, error) {
	var filters []map[string]interface{}

	loc := q.Location
	switch loc.Mode {
	case models.LocationZip:
		return nil, fmt.Errorf("%w: zip %s within %s", ErrUnsupportedFilter, loc.ZipCode, loc.Radius)
	case models.LocationState:
		filters = append(filters, term(FieldState, loc.State))
	case models.LocationCity:
		filters = append(filters,
			term(FieldState, loc.State),
			map[string]interface{}{"match_phrase": map[string]interface{}{FieldCity: loc.City}},
		)
	}

	if q.Code != nil {
		filters = append(filters, term(FieldProgramCode, q.Code.String()))
	}
	if q.TitleKeyword != "" {
		filters = append(filters, map[string]interface{}{
			"match_phrase": map[string]interface{}{FieldProgramTitle: q.TitleKeyword},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(filters) > 0 {
		query = map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		}
	}

	return map[string]interface{}{
		"query": query,
		"from":  q.Page * models.PageSize,
		"size":  models.PageSize,
		"sort":  []interface{}{map[string]interface{}{FieldID: "asc"}},
	}, nil
}

func term(field, value string) map[string]interface{} {
	return map[string]interface{}{"term": map[string]interface{}{field: value}}
}
