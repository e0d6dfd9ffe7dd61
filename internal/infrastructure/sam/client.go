package sam

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"sam-annotator/internal/domain/entity"
	"sam-annotator/internal/domain/port"
)

// ErrNotEncoded Predict вызван до Encode.
var ErrNotEncoded = errors.New("image is not encoded")

// Client HTTP-клиент сервера инференса SAM/SAM2.
type Client struct {
	baseURL    string
	modelType  string
	httpClient *http.Client

	mu          sync.Mutex
	embeddingID string
}

type encodeRequest struct {
	ModelType string `json:"model_type"`
	Image     string `json:"image"`
}

type encodeResponse struct {
	EmbeddingID string `json:"embedding_id"`
}

type predictRequest struct {
	EmbeddingID     string       `json:"embedding_id"`
	PointCoords     [][2]float64 `json:"point_coords,omitempty"`
	PointLabels     []int        `json:"point_labels,omitempty"`
	Box             []float64    `json:"box,omitempty"`
	MultimaskOutput bool         `json:"multimask_output"`
}

type predictResponse struct {
	Masks  []string  `json:"masks"`
	Scores []float64 `json:"scores"`
}

// NewClient создаёт клиента. timeout <= 0 — без ограничения на уровне HTTP.
func NewClient(serverURL, modelType string, timeout time.Duration) *Client {
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}
	if modelType == "" {
		modelType = "vit_b"
	}
	return &Client{
		baseURL:   strings.TrimSuffix(serverURL, "/"),
		modelType: modelType,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Encode отправляет изображение на кодирование и запоминает идентификатор признаков.
func (c *Client) Encode(ctx context.Context, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	body, err := c.sendRequest(ctx, "/v1/encode", encodeRequest{
		ModelType: c.modelType,
		Image:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return err
	}

	var resp encodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.EmbeddingID == "" {
		return errors.New("server returned empty embedding_id")
	}

	c.mu.Lock()
	c.embeddingID = resp.EmbeddingID
	c.mu.Unlock()
	return nil
}

// Predict запрашивает маски для подсказки по последнему закодированному изображению.
func (c *Client) Predict(ctx context.Context, req entity.PredictRequest) (*entity.Prediction, error) {
	c.mu.Lock()
	id := c.embeddingID
	c.mu.Unlock()
	if id == "" {
		return nil, ErrNotEncoded
	}

	payload := predictRequest{
		EmbeddingID:     id,
		PointLabels:     req.Labels,
		MultimaskOutput: true,
	}
	for _, p := range req.Points {
		payload.PointCoords = append(payload.PointCoords, [2]float64{p.X, p.Y})
	}
	if req.Box != nil {
		payload.Box = []float64{req.Box.Min.X, req.Box.Min.Y, req.Box.Max.X, req.Box.Max.Y}
	}

	body, err := c.sendRequest(ctx, "/v1/predict", payload)
	if err != nil {
		return nil, err
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	pred := &entity.Prediction{
		Masks:  make([]entity.Mask, 0, len(resp.Masks)),
		Scores: resp.Scores,
	}
	for i, encoded := range resp.Masks {
		m, err := decodeMask(encoded)
		if err != nil {
			return nil, fmt.Errorf("mask %d: %w", i, err)
		}
		pred.Masks = append(pred.Masks, m)
	}
	return pred, nil
}

// Reset забывает закодированное изображение.
func (c *Client) Reset() {
	c.mu.Lock()
	c.embeddingID = ""
	c.mu.Unlock()
}

func (c *Client) sendRequest(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// decodeMask разбирает маску из base64 PNG: любой ненулевой пиксель — объект.
func decodeMask(encoded string) (entity.Mask, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return entity.Mask{}, fmt.Errorf("decode base64: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return entity.Mask{}, fmt.Errorf("decode png: %w", err)
	}

	b := img.Bounds()
	m := entity.NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y != 0 {
				m.Pix[y*m.Width+x] = 1
			}
		}
	}
	return m, nil
}

// Проверка реализации интерфейса
var _ port.Segmenter = (*Client)(nil)
