package documents

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// shortTextCoherence is returned when there are too few sentences to judge flow.
const shortTextCoherence = 0.4

// Embedder turns sentences into vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, sentences []string) ([][]float32, error)
}

// OpenAIEmbedder calls the OpenAI embeddings endpoint in a single batch.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

func NewOpenAIEmbedder(cfg OpenAIConfig) *OpenAIEmbedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	model := openai.EmbeddingModel(cfg.Model)
	if model == "" {
		model = openai.SmallEmbedding3
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, sentences []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: sentences,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(sentences) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(sentences), len(resp.Data))
	}

	out := make([][]float32, len(sentences))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, errors.New("embedding index out of range")
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// BagOfWordsEmbedder builds term-count vectors over the shared vocabulary of
// the batch. It needs no network and is the default.
type BagOfWordsEmbedder struct{}

func (BagOfWordsEmbedder) Embed(_ context.Context, sentences []string) ([][]float32, error) {
	vocab := make(map[string]int)
	tokenized := make([][]string, len(sentences))
	for i, s := range sentences {
		tokenized[i] = words(strings.ToLower(s))
		for _, w := range tokenized[i] {
			if _, ok := vocab[w]; !ok {
				vocab[w] = len(vocab)
			}
		}
	}

	out := make([][]float32, len(sentences))
	for i, toks := range tokenized {
		vec := make([]float32, len(vocab))
		for _, w := range toks {
			vec[vocab[w]]++
		}
		out[i] = vec
	}
	return out, nil
}

// coherence is the mean cosine similarity of adjacent sentences mapped from
// [-1, 1] onto [0, 1].
func coherence(ctx context.Context, e Embedder, text string) (float64, error) {
	sents := sentences(text)
	if len(sents) < 3 {
		return shortTextCoherence, nil
	}

	vecs, err := e.Embed(ctx, sents)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i+1 < len(vecs); i++ {
		sum += cosine(vecs[i], vecs[i+1])
	}
	avg := sum / float64(len(vecs)-1)
	return math.Max(0, math.Min(1, (avg+1)/2)), nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		na += float64(v) * float64(v)
	}
	for _, v := range b {
		nb += float64(v) * float64(v)
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
