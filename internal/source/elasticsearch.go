// internal/source/elasticsearch.go
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// esPoolSize caps how many mentor documents one search returns. Pool sizes
// beyond a few thousand would need paginated scoring upstream.
const esPoolSize = 2000

// ElasticsearchSource reads the mentor pool from a search index. Useful when
// the marketplace already mirrors mentor profiles into Elasticsearch for its
// browse screens.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearchSource(client *elasticsearch.Client, index string, log logger.Logger) *ElasticsearchSource {
	return &ElasticsearchSource{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"source": "elasticsearch"}),
	}
}

type esHit struct {
	Source models.MentorCandidate `json:"_source"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticsearchSource) ActiveMentorCandidates(ctx context.Context) ([]models.MentorCandidate, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"isActive": true}},
				},
			},
		},
	}

	body, _ := json.Marshal(queryBody)
	size := esPoolSize
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewMentorFetchError(err.Error())
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewMentorFetchError(fmt.Sprintf("search %s: %s", s.index, res.Status()))
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewMentorFetchError(fmt.Sprintf("decode search response: %v", err))
	}

	candidates := make([]models.MentorCandidate, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if err := validateRating(hit.Source); err != nil {
			return nil, err
		}
		candidates = append(candidates, hit.Source)
	}

	return candidates, nil
}
