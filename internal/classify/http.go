package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"braincheck/internal/config"
	"braincheck/internal/imaging"
)

// Client calls a remote inference endpoint speaking the predict-JSON
// convention: a batch of HWC float arrays in, a batch of score vectors out.
type Client struct {
	endpoint string
	http     *http.Client
	pre      imaging.Preprocessing
	logger   *slog.Logger
}

// NewClient creates a classifier client from configuration.
func NewClient(cfg *config.ClassifierConfig, logger *slog.Logger) *Client {
	pre := imaging.Preprocessing{Size: cfg.InputSize}
	copy(pre.Mean[:], cfg.Mean)
	copy(pre.Scale[:], cfg.Scale)

	return &Client{
		endpoint: cfg.Endpoint,
		http:     &http.Client{Timeout: cfg.TimeoutDuration()},
		pre:      pre,
		logger:   logger.With("system", "classifier"),
	}
}

// Preprocessing returns the model's input contract.
func (c *Client) Preprocessing() imaging.Preprocessing {
	return c.pre
}

type predictRequest struct {
	Instances [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

// Classify sends the tensor to the inference endpoint and returns the label
// with the highest score.
func (c *Client) Classify(ctx context.Context, t *imaging.Tensor) (Label, error) {
	body, err := json.Marshal(predictRequest{Instances: [][][][]float32{nest(t)}})
	if err != nil {
		return "", fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: endpoint returned %s", ErrUnavailable, resp.Status)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if len(parsed.Predictions) == 0 || len(parsed.Predictions[0]) == 0 {
		return "", fmt.Errorf("%w: empty prediction", ErrUnavailable)
	}

	scores := parsed.Predictions[0]
	classes := Classes()
	if len(scores) != len(classes) {
		return "", fmt.Errorf("%w: got %d scores for %d classes", ErrUnavailable, len(scores), len(classes))
	}

	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}

	c.logger.Debug("prediction", "label", classes[best], "score", scores[best])
	return classes[best], nil
}

// nest reshapes the flat HWC tensor into rows of pixel channel triples.
func nest(t *imaging.Tensor) [][][]float32 {
	rows := make([][][]float32, t.Size)
	for y := range t.Size {
		row := make([][]float32, t.Size)
		for x := range t.Size {
			off := (y*t.Size + x) * 3
			row[x] = t.Data[off : off+3 : off+3]
		}
		rows[y] = row
	}
	return rows
}
